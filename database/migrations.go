package database

import (
	"log/slog"

	"gorm.io/gorm"

	"socialblog/models"
)

func RunMigrations(db *gorm.DB) error {
	slog.Info("running database migrations")

	err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
	)

	if err != nil {
		slog.Error("migrations failed", "err", err)
		return err
	}

	slog.Info("migrations completed")
	return nil
}
