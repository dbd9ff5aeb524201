package common

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"socialblog/config"
)

// ConnectDb opens the relational store selected by cfg: postgres when
// DATABASE_URL names one, otherwise the sqlite file at SQLITE_DB.
func ConnectDb(cfg config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:         newGormLogger(cfg.Debug),
		TranslateError: true,
	}

	if cfg.UsesPostgres() {
		db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		slog.Info("opened postgres database")
		return db, nil
	}

	dsn := SQLiteDSN(cfg.SQLitePath)
	db, err := gorm.Open(sqlite.Open(dsn), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", cfg.SQLitePath, err)
	}
	slog.Info("opened sqlite database", "path", cfg.SQLitePath)
	return db, nil
}

// SQLiteDSN turns on foreign key enforcement for file databases.
func SQLiteDSN(path string) string {
	if path == ":memory:" || strings.Contains(path, "_foreign_keys") {
		return path
	}
	if strings.Contains(path, "?") {
		return path + "&_foreign_keys=on"
	}
	return path + "?_foreign_keys=on"
}

func newGormLogger(debug bool) logger.Interface {
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	return logger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		logger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  debug,
		},
	)
}
