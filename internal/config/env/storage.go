package env

import (
	"fmt"
	"os"

	"yaminabe_backend/internal/config"
)

const (
	storageDriverEnvName = "STORAGE_DRIVER"
	pgDSNEnvName         = "PG_DSN"
	sqlitePathEnvName    = "SQLITE_PATH"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultSQLitePath = "yaminabe.db"
)

type storageConfig struct {
	driver string
	dsn    string
}

// NewStorageConfig по умолчанию SQLite-файл yaminabe.db, как в браузерной версии
func NewStorageConfig() (config.StorageConfig, error) {
	driver := os.Getenv(storageDriverEnvName)
	if len(driver) == 0 {
		driver = DriverSQLite
	}

	switch driver {
	case DriverPostgres:
		dsn := os.Getenv(pgDSNEnvName)
		if len(dsn) == 0 {
			return nil, fmt.Errorf("pg dsn not found")
		}
		return &storageConfig{driver: driver, dsn: dsn}, nil
	case DriverSQLite:
		path := os.Getenv(sqlitePathEnvName)
		if len(path) == 0 {
			path = defaultSQLitePath
		}
		return &storageConfig{driver: driver, dsn: path}, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}

func (cfg *storageConfig) Driver() string {
	return cfg.driver
}

func (cfg *storageConfig) DSN() string {
	return cfg.dsn
}
