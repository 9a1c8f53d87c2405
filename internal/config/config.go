package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"bedrock-chat/backend/internal/features/config/domain"
)

const (
	DefaultRegion        = "us-east-1"
	DefaultMaxTokens     = 512
	DefaultTemperature   = 0.5
	DefaultTopP          = 0.9
	DefaultModelTimeout  = 60 * time.Second
	// DefaultKnowledgePath selects the document compiled into the binary.
	DefaultKnowledgePath = ""

	ProviderBedrock = "bedrock"
	ProviderStub    = "stub"
)

// ConfigurationError reports a required setting that is missing or invalid.
type ConfigurationError struct {
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s %s", e.Key, e.Reason)
}

// Config holds all configuration for the chat service.
type Config struct {
	// Server configuration
	Port               string
	CORSAllowedOrigins []string

	// Model configuration
	Model domain.ModelConfig

	// Knowledge document
	KnowledgeDocPath string

	// Logging
	LogLevel  string
	LogFormat string
}

// Load reads configuration from the process environment.
// BEDROCK_MODEL_ID is required; everything else has a default.
func Load() (*Config, error) {
	modelID := strings.TrimSpace(os.Getenv("BEDROCK_MODEL_ID"))
	if modelID == "" {
		return nil, &ConfigurationError{
			Key:    "BEDROCK_MODEL_ID",
			Reason: "environment variable must be set to use the Bedrock client",
		}
	}

	provider := strings.ToLower(getEnv("MODEL_PROVIDER", ProviderBedrock))
	if provider != ProviderBedrock && provider != ProviderStub {
		return nil, &ConfigurationError{
			Key:    "MODEL_PROVIDER",
			Reason: fmt.Sprintf("must be %q or %q, got %q", ProviderBedrock, ProviderStub, provider),
		}
	}

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		CORSAllowedOrigins: getStringSliceEnv("CORS_ALLOWED_ORIGINS", "*"),

		Model: domain.ModelConfig{
			ModelID:     modelID,
			Region:      getEnv("AWS_REGION", DefaultRegion),
			Provider:    provider,
			MaxTokens:   getIntEnv("MODEL_MAX_TOKENS", DefaultMaxTokens),
			Temperature: getFloatEnv("MODEL_TEMPERATURE", DefaultTemperature),
			TopP:        getFloatEnv("MODEL_TOP_P", DefaultTopP),
			Timeout:     getDurationEnv("MODEL_TIMEOUT", DefaultModelTimeout),
		},

		KnowledgeDocPath: getEnv("KNOWLEDGE_DOC_PATH", DefaultKnowledgePath),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv gets an integer environment variable or returns a default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

// getFloatEnv gets a float environment variable or returns a default value
func getFloatEnv(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(f)
		}
	}
	return defaultValue
}

// getDurationEnv gets a duration environment variable or returns a default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}

func getStringSliceEnv(key, defaultValue string) []string {
	var out []string
	for _, v := range strings.Split(getEnv(key, defaultValue), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
