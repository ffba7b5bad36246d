package main

import (
	"fmt"
	"log/slog"

	"github.com/rs/zerolog"

	"github.com/viewmarks/extension/internal/config"
	"github.com/viewmarks/extension/internal/database"
	"github.com/viewmarks/extension/internal/storage"
	gormstorage "github.com/viewmarks/extension/internal/storage/gorm"
	"github.com/viewmarks/extension/internal/storage/memory"
)

func createStorageBackend(storageCfg config.StorageConfig, dbLog zerolog.Logger, logger *slog.Logger) (storage.Backend, error) {
	switch storageCfg.Type {
	case "memory":
		logger.Warn("Memory storage does not persist between runs")
		return memory.New(), nil

	case database.DialectSQLite, database.DialectPostgres:
		m := database.NewManager(dbLog)
		if err := m.Connect(storageCfg); err != nil {
			return nil, fmt.Errorf("failed to create %s backend: %w", storageCfg.Type, err)
		}
		logger.Info("Database storage backend initialized", "type", storageCfg.Type)
		return gormstorage.New(m), nil

	default:
		return nil, fmt.Errorf("unknown storage type: %s", storageCfg.Type)
	}
}
