package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	BotToken string `env:"BOT_TOKEN"`
	API      APIConfig
	Database DatabaseConfig
	Limits   LimitsConfig
	Session  SessionConfig
	Log      LogConfig
}

// APIConfig holds settings of the VocabDash REST backend
type APIConfig struct {
	BaseURL       string        `env:"API_BASE_URL"       env-default:"http://localhost:8000"`
	Timeout       time.Duration `env:"API_TIMEOUT"        env-default:"30s"`
	UploadTimeout time.Duration `env:"API_UPLOAD_TIMEOUT" env-default:"5m"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string `env:"DB_HOST"     env-default:"localhost"`
	Port     string `env:"DB_PORT"     env-default:"5432"`
	Name     string `env:"DB_NAME"     env-default:"vocabdash"`
	User     string `env:"DB_USER"     env-default:"vocabdash"`
	Password string `env:"DB_PASSWORD"`
}

// LimitsConfig holds product limits
type LimitsConfig struct {
	BatchTranslate int   `env:"BATCH_TRANSLATE_LIMIT" env-default:"50"`
	TopWords       int   `env:"TOP_WORDS"             env-default:"10"`
	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES"      env-default:"52428800"`
	// UploadRollback deletes a document whose processing failed after upload
	UploadRollback bool `env:"UPLOAD_ROLLBACK" env-default:"true"`
}

// SessionConfig holds stored session maintenance settings
type SessionConfig struct {
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" env-default:"24h"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level       string `env:"LOG_LEVEL"       env-default:"info"`
	Development bool   `env:"LOG_DEVELOPMENT" env-default:"false"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load(getEnv("ENV_FILE", ".env"))

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("BOT_TOKEN is required")
	}
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}

	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("API_BASE_URL must be an absolute URL, got %q", c.API.BaseURL)
	}

	if c.Limits.BatchTranslate < 1 {
		return fmt.Errorf("BATCH_TRANSLATE_LIMIT must be positive")
	}
	if c.Limits.TopWords < 1 {
		return fmt.Errorf("TOP_WORDS must be positive")
	}
	if c.Limits.MaxUploadBytes < 1 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}

	return nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
