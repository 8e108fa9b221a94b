package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	PostgreSQL PostgreSQLConfig
	Redis      RedisConfig
	Server     ServerConfig
	Chatbot    ChatbotConfig
	Logging    LoggingConfig
	OpenAI     OpenAIConfig
}

// PostgreSQLConfig holds PostgreSQL database configuration
type PostgreSQLConfig struct {
	DSN                string
	Host               string
	Port               int
	User               string
	Password           string
	Database           string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
}

// RedisConfig holds the optional recent-listings cache configuration.
// An empty Addr disables the cache entirely.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTLSec   int
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
}

// ChatbotConfig holds chatbot search limits
type ChatbotConfig struct {
	MaxExactResults       int // exact-match results per message
	MaxAlternativeResults int // results per relaxation strategy
	HistoryTurns          int // trailing conversation turns sent to the model
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string
	Env   string
}

// OpenAIConfig holds the completion-service configuration
type OpenAIConfig struct {
	APIKey           string
	APIBase          string
	Model            string
	Temperature      float64
	MaxTokens        int
	PresencePenalty  float64
	FrequencyPenalty float64
	Timeout          int // seconds; expiry is treated as a service error
	Enabled          bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		PostgreSQL: PostgreSQLConfig{
			DSN:                getEnv("DATABASE_URL", getEnv("PG_DSN", "")),
			Host:               getEnv("PG_HOST", "localhost"),
			Port:               getEnvAsInt("PG_PORT", 5432),
			User:               getEnv("PG_USER", "postgres"),
			Password:           getEnv("PG_PASSWORD", ""),
			Database:           getEnv("PG_DATABASE", "hitech_homes"),
			SSLMode:            getEnv("PG_SSLMODE", "disable"),
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 25),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 5),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			TTLSec:   getEnvAsInt("REDIS_TTL_SECONDS", 60),
		},
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 5000),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CLIENT_URL", "http://localhost:5173"),
		},
		Chatbot: ChatbotConfig{
			MaxExactResults:       getEnvAsInt("CHATBOT_MAX_EXACT_RESULTS", 5),
			MaxAlternativeResults: getEnvAsInt("CHATBOT_MAX_ALTERNATIVES", 3),
			HistoryTurns:          getEnvAsInt("CHATBOT_HISTORY_TURNS", 6),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			Env:   getEnv("APP_ENV", "production"),
		},
		OpenAI: OpenAIConfig{
			APIKey:           getEnv("OPENAI_API_KEY", ""),
			APIBase:          getEnv("OPENAI_API_BASE", "https://api.openai.com/v1"),
			Model:            getEnv("OPENAI_CHAT_MODEL", "gpt-4o-mini"),
			Temperature:      getEnvAsFloat("OPENAI_CHAT_TEMPERATURE", 0.7),
			MaxTokens:        getEnvAsInt("OPENAI_CHAT_MAX_TOKENS", 800),
			PresencePenalty:  getEnvAsFloat("OPENAI_PRESENCE_PENALTY", 0.6),
			FrequencyPenalty: getEnvAsFloat("OPENAI_FREQUENCY_PENALTY", 0.3),
			Timeout:          getEnvAsInt("OPENAI_TIMEOUT", 15),
			Enabled:          getEnv("OPENAI_API_KEY", "") != "",
		},
	}

	return cfg, nil
}

// GetPostgreSQLDSN returns PostgreSQL connection string
func (c *Config) GetPostgreSQLDSN() string {
	if c.PostgreSQL.DSN != "" {
		return c.PostgreSQL.DSN
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgreSQL.Host,
		c.PostgreSQL.Port,
		c.PostgreSQL.User,
		c.PostgreSQL.Password,
		c.PostgreSQL.Database,
		c.PostgreSQL.SSLMode,
	)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float value for %s, using default %f", key, defaultValue)
		return defaultValue
	}
	return value
}
