package config

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/dinarex/exchange-backend/utils/logger"
)

// Config holds the runtime settings read from the environment.
type Config struct {
	Port        string
	DatabaseURL string
	UploadDir   string
}

// Load reads .env (if present) and the environment. DATABASE_URL is
// mandatory.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logger.Infof("no .env file found, reading environment variables")
	}

	cfg := &Config{
		Port:        os.Getenv("PORT"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		UploadDir:   os.Getenv("UPLOAD_DIR"),
	}
	if cfg.DatabaseURL == "" {
		logger.Fatalf("DATABASE_URL is required in .env or environment")
	}
	if cfg.Port == "" {
		cfg.Port = "4000"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "uploads"
	}
	return cfg
}
