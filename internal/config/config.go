package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database    DatabaseConfig
	JWT         JWTConfig
	App         AppConfig
	DeviceCloud DeviceCloudConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

// DeviceCloudConfig holds the vendor cloud credentials for the punch sync job.
// SyncEnabled turns the job off entirely for deployments where devices push
// directly to the ingest endpoint.
type DeviceCloudConfig struct {
	SyncEnabled  bool
	BaseURL      string
	ClientID     string
	ClientSecret string
	TokenURL     string
	SyncInterval time.Duration
}

func Load() (*Config, error) {
	// A missing .env file is fine; the environment may carry everything.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "shiftcore"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS"),
	}
	if len(config.App.AllowedOrigins) == 0 {
		config.App.AllowedOrigins = []string{"http://localhost:3000"}
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	// Device cloud configuration
	syncInterval, err := time.ParseDuration(getEnv("DEVICE_CLOUD_SYNC_INTERVAL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEVICE_CLOUD_SYNC_INTERVAL: %w", err)
	}

	config.DeviceCloud = DeviceCloudConfig{
		SyncEnabled:  getEnv("DEVICE_CLOUD_SYNC_ENABLED", "false") == "true",
		BaseURL:      getEnv("DEVICE_CLOUD_BASE_URL", ""),
		ClientID:     getEnv("DEVICE_CLOUD_CLIENT_ID", ""),
		ClientSecret: getEnv("DEVICE_CLOUD_CLIENT_SECRET", ""),
		TokenURL:     getEnv("DEVICE_CLOUD_TOKEN_URL", ""),
		SyncInterval: syncInterval,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.DeviceCloud.SyncEnabled {
		if c.DeviceCloud.BaseURL == "" {
			return fmt.Errorf("DEVICE_CLOUD_BASE_URL is required when sync is enabled")
		}
		if c.DeviceCloud.ClientID == "" {
			return fmt.Errorf("DEVICE_CLOUD_CLIENT_ID is required when sync is enabled")
		}
		if c.DeviceCloud.ClientSecret == "" {
			return fmt.Errorf("DEVICE_CLOUD_CLIENT_SECRET is required when sync is enabled")
		}
		if c.DeviceCloud.TokenURL == "" {
			return fmt.Errorf("DEVICE_CLOUD_TOKEN_URL is required when sync is enabled")
		}
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	return strings.Split(value, ",")
}
