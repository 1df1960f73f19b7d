package storage

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"turtlescript/console/pkg/config"
	"turtlescript/console/pkg/journal"
)

// Open creates the storage backend selected by cfg.Driver. For SQLite the
// parent directory of cfg.Path is created if missing.
func Open(cfg *config.JournalConfig, logger *slog.Logger) (journal.Storage, error) {
	switch cfg.Driver {
	case "memory":
		return NewMemoryStorage(), nil

	case "sqlite", "sqlite3":
		if dir := filepath.Dir(cfg.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, journal.NewStorageError(cfg.Driver, "open", err)
			}
		}
		return NewSQLiteStorage(SQLiteConfig{
			Driver:      cfg.Driver,
			Path:        cfg.Path,
			BusyTimeout: cfg.BusyTimeout,
			WALMode:     true,
		}, logger)

	default:
		return nil, fmt.Errorf("unsupported journal driver: %s", cfg.Driver)
	}
}
