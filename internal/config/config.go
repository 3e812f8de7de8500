package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Links    LinkConfig
	Flash    FlashConfig
	Tracing  TracingConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	FlashLogFilePath   string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type AuthConfig struct {
	JwtSecret string
}

type LinkConfig struct {
	TitleTopic         string // watermill topic of the title fetch jobs
	TitleFetchTimeout  time.Duration
	ConnectionCacheTTL time.Duration
}

type FlashConfig struct {
	QueueSize int
	QueueTTL  time.Duration
}

type TracingConfig struct {
	Enabled     bool
	ServiceName string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			FlashLogFilePath:   getEnv("FLASH_LOG_FILE_PATH", "logs/flash.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			JwtSecret: getEnv("JWT_SECRET", ""),
		},
		Links: LinkConfig{
			TitleTopic:         getEnv("FETCH_LINK_TITLE_TOPIC_NAME", "FETCH_LINK_TITLE"),
			TitleFetchTimeout:  getEnvAsDuration("TITLE_FETCH_TIMEOUT", 10*time.Second),
			ConnectionCacheTTL: getEnvAsDuration("CONNECTION_CACHE_TTL", 10*time.Minute),
		},
		Flash: FlashConfig{
			QueueSize: getEnvAsInt("FLASH_QUEUE_SIZE", 20),
			QueueTTL:  getEnvAsDuration("FLASH_QUEUE_TTL", 30*time.Minute),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvAsBool("OTEL_ENABLED", false),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "digraph-be"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts "15s" style durations
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil && value > 0 {
		return value
	}
	return fallback
}
