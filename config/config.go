package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port         int
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CORSOrigins  []string

	// Logging
	LogLevel string
	LogFile  string

	// MongoDB
	MongoURI      string
	MongoDatabase string
	MongoTimeout  time.Duration

	// Background work
	JobsEnabled       bool
	OverdueCron       string
	MigrationsEnabled bool
}

// LoadConfig loads the application configuration from the .env file, if any,
// and the environment. An unparsable OVERDUE_CRON while jobs are enabled is
// an error; other bad values fall back to defaults.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using environment variables.")
	}

	config := &Config{
		Port:         getEnvInt("PORT", 8080),
		Env:          getEnvString("APP_ENV", "development"),
		ReadTimeout:  time.Duration(getEnvInt("READ_TIMEOUT", 15)) * time.Second,
		WriteTimeout: time.Duration(getEnvInt("WRITE_TIMEOUT", 15)) * time.Second,
		CORSOrigins:  getEnvStringSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),

		LogLevel: getEnvString("LOG_LEVEL", "info"),
		LogFile:  getEnvString("LOG_FILE", "clinic.log"),

		MongoURI:      getEnvString("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnvString("MONGO_DATABASE", "clinic"),
		MongoTimeout:  time.Duration(getEnvInt("MONGO_TIMEOUT", 10)) * time.Second,

		JobsEnabled:       getEnvBool("JOBS_ENABLED", true),
		OverdueCron:       getEnvString("OVERDUE_CRON", "0 6 * * *"),
		MigrationsEnabled: getEnvBool("MIGRATIONS_ENABLED", true),
	}

	validateConfig(config)

	if config.JobsEnabled {
		if _, err := cron.ParseStandard(config.OverdueCron); err != nil {
			return nil, fmt.Errorf("invalid OVERDUE_CRON %q: %w", config.OverdueCron, err)
		}
	}

	return config, nil
}

// validateConfig logs warnings for values that will make the service misbehave
func validateConfig(config *Config) {
	if config.Port <= 0 || config.Port > 65535 {
		log.Printf("Warning: invalid PORT %d, using 8080", config.Port)
		config.Port = 8080
	}
	if config.MongoTimeout <= 0 {
		log.Println("Warning: MONGO_TIMEOUT must be positive, using 10s")
		config.MongoTimeout = 10 * time.Second
	}
	if len(config.CORSOrigins) == 0 {
		log.Println("Warning: CORS_ALLOWED_ORIGINS is empty, allowing every origin")
		config.CORSOrigins = []string{"*"}
	}
	if config.Env == "production" && len(config.CORSOrigins) == 1 && config.CORSOrigins[0] == "*" {
		log.Println("Warning: CORS allows every origin in production")
	}
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	valueStr = strings.ToLower(valueStr)
	return valueStr == "true" || valueStr == "1" || valueStr == "yes"
}

func getEnvString(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvStringSlice reads a comma-separated list, dropping empty entries
func getEnvStringSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var values []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
