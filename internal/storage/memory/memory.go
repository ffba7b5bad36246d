// Package memory keeps save documents in process memory.
package memory

import (
	"encoding/json"
	"errors"
	"slices"
	"sync"

	"github.com/viewmarks/extension/internal/storage"
)

// Backend stores save documents in a map
type Backend struct {
	docs map[string][]byte
	mu   sync.RWMutex
}

// New creates a new memory backend
func New() *Backend {
	return &Backend{
		docs: make(map[string][]byte),
	}
}

// Init is a no-op for the memory backend.
func (b *Backend) Init() error {
	return nil
}

// Close drops every stored document.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.docs = make(map[string][]byte)
	return nil
}

// SaveDocument stores a copy of doc under name.
func (b *Backend) SaveDocument(name string, doc []byte) error {
	if name == "" {
		return errors.New("document name is empty")
	}
	if !json.Valid(doc) {
		return errors.New("document is not valid JSON")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.docs[name] = slices.Clone(doc)
	return nil
}

// LoadDocument returns a copy of the named document.
func (b *Backend) LoadDocument(name string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	doc, ok := b.docs[name]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return slices.Clone(doc), nil
}

// ListDocuments returns the stored names in ascending order.
func (b *Backend) ListDocuments() ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	names := make([]string, 0, len(b.docs))
	for name := range b.docs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

var _ storage.Backend = (*Backend)(nil)
