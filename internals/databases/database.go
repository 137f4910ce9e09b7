// file: internals/databases/database.go
//
// Storage perangkat (key-value) untuk token & identitas sesi.
package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"studentpoints_client/internals/configs"
)

// Storage: operasi single-key atomik + SetMany (semua-atau-tidak sama sekali).
type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	SetMany(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open memilih driver dari config: "bolt" (default) atau "sqlite".
func Open(cfg configs.StorageConfig, log *zap.Logger) (Storage, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("storage: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o700); err != nil {
		return nil, fmt.Errorf("storage: create dir: %w", err)
	}

	switch cfg.Driver {
	case "", "bolt":
		return OpenBolt(cfg.Path, log)
	case "sqlite":
		return OpenSQLite(cfg.Path, log)
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", cfg.Driver)
	}
}
