package main

import (
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/dinarex/exchange-backend/config"
	"github.com/dinarex/exchange-backend/utils/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Infof("no .env file found, reading environment variables")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatalf("DATABASE_URL is required")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Fatalf("failed to connect to DB: %v", err)
	}

	if err := config.Migrate(db); err != nil {
		logger.Fatalf("migration failed: %v", err)
	}
	logger.Infof("database migration completed")
}
