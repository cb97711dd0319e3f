package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Telegram TelegramConfig
	Sheets   SheetsConfig
	Registry RegistryConfig
	Health   HealthConfig
	LogLevel string
}

// TelegramConfig holds the Telegram bot configuration
type TelegramConfig struct {
	BotToken    string
	PollTimeout int // long-poll timeout in seconds
}

// SheetsConfig holds the Google Sheets configuration
type SheetsConfig struct {
	CredentialsPath string
	RequestTimeout  time.Duration
}

// RegistryConfig holds the tutor registry configuration
type RegistryConfig struct {
	Path string
}

// HealthConfig holds the health HTTP listener configuration
type HealthConfig struct {
	Addr string
}

// LoadConfig loads the configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Telegram: TelegramConfig{
			BotToken:    getEnv("TELEGRAM_BOT_TOKEN", ""),
			PollTimeout: getEnvAsInt("TELEGRAM_POLL_TIMEOUT", 60),
		},
		Sheets: SheetsConfig{
			CredentialsPath: getEnv("CREDENTIALS_PATH", "credentials.json"),
			RequestTimeout:  getEnvAsDuration("SHEETS_TIMEOUT", 15*time.Second),
		},
		Registry: RegistryConfig{
			Path: getEnv("TUTORS_CONFIG_PATH", "tutors_config.json"),
		},
		Health: HealthConfig{
			Addr: getEnv("HEALTH_ADDR", ":8080"),
		},
		LogLevel: getEnv("LOG_LEVEL", "INFO"),
	}
}

// Validate checks that required configuration is present. The registry file
// is not checked here: it is created on first use.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is required")
	}

	if _, err := os.Stat(c.Sheets.CredentialsPath); err != nil {
		return fmt.Errorf("credentials file not found at %s: %w", c.Sheets.CredentialsPath, err)
	}

	return nil
}

// Helper functions to read environment variables
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
