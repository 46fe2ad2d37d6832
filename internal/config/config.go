package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	SiteName      string
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	SQLitePath    string
	RedisHost     string
	RedisPort     string
	SessionSecret string
	GinMode       string
	RosterPath    string
	PreseedCron   string
	ListenAddr    string
}

func Load() *Config {
	// Missing .env is fine; the environment still wins.
	_ = godotenv.Load()

	return &Config{
		SiteName:      getEnv("SITE_NAME", "AG WS"),
		DBDriver:      getEnv("DB_DRIVER", "sqlite"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "3306"),
		DBUser:        getEnv("DB_USER", "checklist"),
		DBPassword:    getEnv("DB_PASSWORD", "checklist"),
		DBName:        getEnv("DB_NAME", "checklist"),
		SQLitePath:    getEnv("SQLITE_PATH", "checklist.db"),
		RedisHost:     getEnv("REDIS_HOST", ""),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		SessionSecret: getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		RosterPath:    getEnv("ROSTER_PATH", ""),
		PreseedCron:   getEnv("PRESEED_CRON", "0 5 * * *"),
		ListenAddr:    getEnv("LISTEN_ADDR", ":8080"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
