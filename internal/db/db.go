package db

import (
	"log"
	"time"

	"github.com/nutriplan/consultation-api/internal/config"
	"github.com/nutriplan/consultation-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Form{},
		&models.Consultation{},
		&models.PhoneVerification{},
		&models.ConsultationLog{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// A slot is a global resource: at most one non-cancelled booking
	// per (date, time). The insert inside the booking transaction
	// relies on this index, not on the calendar snapshot.
	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_consultations_active_slot
        ON consultations (date, time)
        WHERE status IN ('scheduled', 'confirmed')
    `)

	// A phone number may be verified on at most one account.
	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_users_verified_phone
        ON users (phone)
        WHERE phone_verified
    `)

	return db
}
