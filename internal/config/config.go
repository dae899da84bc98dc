package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config holds the runtime configuration, loaded from the environment.
type Config struct {
	// DBDriver selects the gorm driver: "sqlite" (default) or "postgres".
	DBDriver string
	// DBPath is the sqlite database file path.
	DBPath string
	// DBDSN is the postgres connection string when DBDriver is "postgres".
	DBDSN string
	// DataRoot is the base directory for archived files and sidecars.
	DataRoot string
	// HTTPPort is the port the API server listens on.
	HTTPPort string
	// RedisAddr enables the redis stats cache when non-empty.
	RedisAddr string
	// ArchiveCompress selects the at-rest codec for uploaded files: "gzip" or "none".
	ArchiveCompress string
	// ReminderScanCron is the cron schedule of the reminder scan job.
	ReminderScanCron string
}

// LoadConfig reads the configuration from the environment, loading a .env
// file first when one is present.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.Debugf("no .env file loaded: %v", err)
	}

	cnf := &Config{
		DBDriver:         getEnv("DB_DRIVER", "sqlite"),
		DBPath:           getEnv("DB_PATH", filepath.Join(".data", "minutes.db")),
		DBDSN:            getEnv("DB_DSN", ""),
		DataRoot:         getEnv("DATA_ROOT", ".data"),
		HTTPPort:         getEnv("HTTP_PORT", "4001"),
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		ArchiveCompress:  getEnv("ARCHIVE_COMPRESS", "none"),
		ReminderScanCron: getEnv("REMINDER_SCAN_CRON", "@every 1m"),
	}

	return cnf
}

// GetDb opens the database described by the config.
func GetDb(cnf *Config) *gorm.DB {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	if cnf.DBDriver == "postgres" {
		db, err := gorm.Open(postgres.Open(cnf.DBDSN), gormConfig)
		if err != nil {
			logrus.Fatalf("failed to connect to postgres: %v", err)
		}
		return db
	}

	if err := os.MkdirAll(filepath.Dir(cnf.DBPath), os.ModePerm); err != nil {
		logrus.Fatalf("failed to create database directory: %v", err)
	}

	db, err := gorm.Open(sqlite.Open(cnf.DBPath), gormConfig)
	if err != nil {
		logrus.Fatalf("failed to open sqlite database: %v", err)
	}

	return db
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
