package config

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/dinarex/exchange-backend/models"
	"github.com/dinarex/exchange-backend/utils/logger"
)

// SetupDatabase connects to Postgres and migrates the schema.
func SetupDatabase(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Fatalf("failed to connect to DB: %v", err)
	}

	if err := Migrate(db); err != nil {
		logger.Fatalf("migration failed: %v", err)
	}

	logger.Infof("database connected and migrated")
	return db
}

// Migrate runs AutoMigrate for every model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Transaction{},
		&models.PaymentSettings{},
		&models.Notification{},
		&models.ProofFile{},
	)
}
