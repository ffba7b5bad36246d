// Package storage defines where host save documents are kept. A document is
// the JSON the host writes for the extension object in its save file.
package storage

import "errors"

// ErrNotFound is returned when no document exists under the requested name.
var ErrNotFound = errors.New("save document not found")

// Backend is the interface all storage implementations must satisfy
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// SaveDocument creates or overwrites the named document.
	SaveDocument(name string, doc []byte) error

	// LoadDocument returns ErrNotFound when the document does not exist.
	LoadDocument(name string) ([]byte, error)

	// ListDocuments returns document names in ascending order.
	ListDocuments() ([]string, error)
}
