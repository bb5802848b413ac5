package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// GetDurationEnv returns a duration environment variable or a default value.
func GetDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

// IsProduction checks if the app runs in production mode.
func IsProduction() bool {
	return GetEnv("ENV", "development") == "production"
}

// DatabaseConfig holds the postgres connection and pool settings.
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// RedisConfig holds the redis connection settings.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// GatewayConfig identifies the hosted contract and its initial parameters.
type GatewayConfig struct {
	ContractAccount        string
	Owner                  string
	GatewayCharge          string
	GatewayAmountConverter string
	StateCacheTTL          time.Duration
	EventChannel           string
}

type Config struct {
	Port        string
	LogLevel    string
	JWTSecret   string
	CORSOrigins string
	Database    DatabaseConfig
	Redis       RedisConfig
	Gateway     GatewayConfig
}

// Load reads the full configuration from the environment.
func Load() Config {
	return Config{
		Port:        GetEnv("PORT", "3000"),
		LogLevel:    GetEnv("LOG_LEVEL", "info"),
		JWTSecret:   GetEnv("JWT_SECRET", ""),
		CORSOrigins: GetEnv("CORS_ORIGINS", "http://localhost:5173"),
		Database: DatabaseConfig{
			Host:            GetEnv("DB_HOST", "localhost"),
			Port:            GetEnv("DB_PORT", "5432"),
			User:            GetEnv("DB_USER", "postgres"),
			Password:        GetEnv("DB_PASSWORD", "postgres"),
			Name:            GetEnv("DB_NAME", "konnadex"),
			MaxIdleConns:    GetIntEnv("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    GetIntEnv("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: GetDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
			ConnMaxIdleTime: GetDurationEnv("DB_CONN_MAX_IDLE_TIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			Host:     GetEnv("REDIS_HOST", "localhost"),
			Port:     GetEnv("REDIS_PORT", "6379"),
			Password: GetEnv("REDIS_PASSWORD", ""),
			DB:       GetIntEnv("REDIS_DB", 0),
		},
		Gateway: GatewayConfig{
			ContractAccount:        strings.ToLower(GetEnv("GATEWAY_CONTRACT_ACCOUNT", "konnadex.near")),
			Owner:                  GetEnv("GATEWAY_OWNER", ""),
			GatewayCharge:          GetEnv("GATEWAY_CHARGE", "1"),
			GatewayAmountConverter: GetEnv("GATEWAY_AMOUNT_CONVERTER", "1000"),
			StateCacheTTL:          GetDurationEnv("STATE_CACHE_TTL", 5*time.Minute),
			EventChannel:           GetEnv("EVENT_CHANNEL", "konnadex:events"),
		},
	}
}
