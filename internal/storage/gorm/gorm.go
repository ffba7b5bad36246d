// Package gormstorage keeps save documents in a sqlite or postgres table.
package gormstorage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/viewmarks/extension/internal/database"
	"github.com/viewmarks/extension/internal/storage"
)

// SaveDocument is one host save document.
type SaveDocument struct {
	ID        uint           `gorm:"primarykey"`
	Name      string         `gorm:"size:255;not null;uniqueIndex"`
	Document  datatypes.JSON `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName pins the table name.
func (SaveDocument) TableName() string {
	return "save_documents"
}

// Backend stores save documents through gorm
type Backend struct {
	db *database.Manager
}

// New creates a backend on a connected database manager.
func New(db *database.Manager) *Backend {
	return &Backend{db: db}
}

// Init migrates the save_documents table.
func (b *Backend) Init() error {
	return b.db.Setup(&SaveDocument{})
}

// Close closes the database connection.
func (b *Backend) Close() error {
	return b.db.Close()
}

// SaveDocument creates or overwrites the named document.
func (b *Backend) SaveDocument(name string, doc []byte) error {
	if name == "" {
		return errors.New("document name is empty")
	}
	if !json.Valid(doc) {
		return errors.New("document is not valid JSON")
	}

	row := SaveDocument{
		Name:     name,
		Document: datatypes.JSON(doc),
	}
	err := b.db.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"document", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("save document %q: %w", name, err)
	}

	b.db.Logger.Debug().Str("name", name).Int("bytes", len(doc)).Msg("Saved document")
	return nil
}

// LoadDocument returns the named document.
func (b *Backend) LoadDocument(name string) ([]byte, error) {
	var row SaveDocument
	err := b.db.DB.Where("name = ?", name).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load document %q: %w", name, err)
	}
	return []byte(row.Document), nil
}

// ListDocuments returns the stored names in ascending order.
func (b *Backend) ListDocuments() ([]string, error) {
	var names []string
	err := b.db.DB.Model(&SaveDocument{}).Order("name").Pluck("name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return names, nil
}

var _ storage.Backend = (*Backend)(nil)
