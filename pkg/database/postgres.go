package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tickethub/internal/models"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.Event{}, &models.Ticket{}, &models.RefundRequest{}); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Partial unique indexes back the pending-refund rules against races:
	// at most one pending request per ticket code, and one per user
	// system-wide.
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_refund_pending_ticket
		ON refund_requests (ticket_code)
		WHERE approved IS NULL
	`)
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_refund_pending_user
		ON refund_requests (user_id)
		WHERE approved IS NULL
	`)

	return db
}
