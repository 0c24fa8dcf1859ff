package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Optional infrastructure. Empty values disable the corresponding
	// integration (notifications, availability cache).
	RabbitURL string
	RedisAddr string

	// EditCutoff is how long before the event start ticket edits close.
	// Zero means tickets are editable right up to the start.
	EditCutoff time.Duration

	StatusCacheTTL time.Duration
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", "postgres"),
		DBName:         getEnv("DB_NAME", "tickethub"),
		RabbitURL:      os.Getenv("RABBITMQ_URL"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		EditCutoff:     time.Duration(getEnvInt("EDIT_CUTOFF_HOURS", 0)) * time.Hour,
		StatusCacheTTL: time.Duration(getEnvInt("STATUS_CACHE_TTL_SECONDS", 30)) * time.Second,
	}
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
