package config

import (
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	dsn := os.Getenv("DB_URL")

	// TranslateError maps unique-constraint violations to gorm.ErrDuplicatedKey,
	// which the appointment store depends on for slot-conflict detection.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		panic("Failed to connect database")
	}

	DB = db
}

// EnsureSlotIndex creates the partial unique index that prevents two
// non-cancelled appointments from occupying the same (date, time) slot.
// Cancelled rows release the slot. AutoMigrate cannot express a partial
// index, so it is created explicitly after migration.
func EnsureSlotIndex(db *gorm.DB) error {
	return db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_slot
		ON appointments (appointment_date, appointment_time)
		WHERE status <> 'cancelled' AND deleted_at IS NULL
	`).Error
}
