// Package config handles application settings loaded from environment
// variables (populated from the .env file in main).
package config

import (
	"errors"
	"os"
)

const defaultModel = "gemini-2.0-flash"

// Config holds all configuration for the application. Only the Gemini API
// key is mandatory; the connection strings are checked at the point where
// the SQL source or Mongo sink is actually selected.
type Config struct {
	GeminiAPIKey    string
	GeminiModel     string
	SQLConnString   string
	MongoConnString string
	LogLevel        string
}

// LoadConfig reads application settings from environment variables.
func LoadConfig() (*Config, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY environment variable not set")
	}

	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = defaultModel
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	return &Config{
		GeminiAPIKey:    apiKey,
		GeminiModel:     model,
		SQLConnString:   os.Getenv("SQL_CONNECTION_STRING"),
		MongoConnString: os.Getenv("MONGO_CONNECTION_STRING"),
		LogLevel:        logLevel,
	}, nil
}
