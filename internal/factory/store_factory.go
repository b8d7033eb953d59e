package factory

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/elmehdi/phishmail/internal/adapters/store"
	"github.com/elmehdi/phishmail/internal/config"
	"github.com/elmehdi/phishmail/internal/core"
)

// StoreFactory creates email repositories based on configuration
type StoreFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewStoreFactory creates a new store factory
func NewStoreFactory(cfg *config.Config, logger *zap.Logger) *StoreFactory {
	return &StoreFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateEmailRepository creates an email repository based on the configuration
func (f *StoreFactory) CreateEmailRepository() (core.EmailRepository, error) {
	storageConfig := f.cfg.GetStorage()

	switch storageConfig.Type {
	case "memory":
		return store.NewMemoryStore(f.logger), nil
	case "sqlite":
		// Ensure directory exists
		if err := os.MkdirAll(filepath.Dir(storageConfig.SQLitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		return store.NewSQLiteStore(storageConfig.SQLitePath, f.logger)
	case "mysql":
		return store.NewMySQLStore(storageConfig.MySQLDSN, f.logger)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", storageConfig.Type)
	}
}
