// Package config loads application configuration from an optional YAML
// file overlaid with environment variables. Environment always wins, so a
// deployment can ship a config file and still override single values.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string `yaml:"server_address"`
	Environment   string `yaml:"environment"`

	// Storage layout
	DataRoot   string `yaml:"data_root"`
	UploadRoot string `yaml:"upload_root"`
	PublicDir  string `yaml:"public_dir"`

	// AI gateway
	AIAPIKey  string `yaml:"ai_api_key"`
	AIModel   string `yaml:"ai_model"`
	AIBaseURL string `yaml:"ai_base_url"`

	// Logging and features
	LogLevel   string `yaml:"log_level"`
	EnableCORS bool   `yaml:"enable_cors"`
}

// LoadConfig loads configuration, in order: defaults, the YAML file named
// by MEMOIR_CONFIG (if set and present), then environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: ":8080",
		Environment:   "development",
		DataRoot:      "data",
		UploadRoot:    "uploads",
		PublicDir:     "public",
		AIModel:       "gpt-4o",
		LogLevel:      "info",
		EnableCORS:    true,
	}

	if path := os.Getenv("MEMOIR_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.ServerAddress = getEnv("SERVER_ADDRESS", cfg.ServerAddress)
	cfg.Environment = getEnv("ENVIRONMENT", cfg.Environment)
	cfg.DataRoot = getEnv("DATA_ROOT", cfg.DataRoot)
	cfg.UploadRoot = getEnv("UPLOAD_ROOT", cfg.UploadRoot)
	cfg.PublicDir = getEnv("PUBLIC_DIR", cfg.PublicDir)
	cfg.AIAPIKey = getEnv("MEMOIR_API_KEY", getEnv("OPENAI_API_KEY", cfg.AIAPIKey))
	cfg.AIModel = getEnv("AI_MODEL", cfg.AIModel)
	cfg.AIBaseURL = getEnv("AI_BASE_URL", cfg.AIBaseURL)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.EnableCORS = getEnvBool("ENABLE_CORS", cfg.EnableCORS)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// Validate checks if all required configuration is present. A missing AI
// key is valid: the AI endpoints degrade to an inline error response.
func (c *Config) Validate() error {
	if c.DataRoot == "" {
		return fmt.Errorf("data root must not be empty")
	}
	if c.UploadRoot == "" {
		return fmt.Errorf("upload root must not be empty")
	}
	return nil
}

// AIConfigured reports whether the AI gateway has a usable credential.
func (c *Config) AIConfigured() bool {
	return c.AIAPIKey != "" && c.AIAPIKey != "your-api-key-here"
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}
