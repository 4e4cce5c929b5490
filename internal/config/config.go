package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type Config struct {
	DBDriver  string
	DBDSN     string
	RedisAddr string
}

// LoadConfig reads .env when present and falls back to process env.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Debugf("no .env file loaded: %v", err)
	}

	return &Config{
		DBDriver:  getenv("JOURNAL_DB_DRIVER", "sqlite"),
		DBDSN:     getenv("JOURNAL_DB_DSN", ".tmp/journal.db?_foreign_keys=on"),
		RedisAddr: os.Getenv("JOURNAL_REDIS_ADDR"),
	}
}

// GetDb opens the configured database. TranslateError makes constraint
// violations surface as gorm.ErrDuplicatedKey on both drivers.
func GetDb(cfg *Config) *gorm.DB {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DBDSN)
	default:
		dialector = sqlite.Open(cfg.DBDSN)
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		panic(err)
	}

	return db
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
