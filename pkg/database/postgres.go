package database

import (
	"log"

	"github.com/bookeasy/ticketing/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.Reservation{},
		&models.Booking{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// The reaper scans pending holds by expiry on every sweep
	db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_reservations_pending_expiry
		ON reservations (expires_at)
		WHERE status = 'pending'
	`)

	return db
}
