package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	apperrors "travelmind/backend/pkg/errors"
)

// Supported LLM providers
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// DefaultGroqBaseURL is the OpenAI-compatible endpoint used when no base URL is set
const DefaultGroqBaseURL = "https://api.groq.com/openai/v1"

var defaultModels = map[string]string{
	ProviderOpenAI:    "llama-3.1-8b-instant",
	ProviderAnthropic: "claude-3-5-haiku-latest",
	ProviderGemini:    "gemini-1.5-flash",
}

// Config holds all application configuration
type Config struct {
	// App
	Port string
	Env  string

	// Neo4j. All three empty (or any one missing) leaves the graph disabled.
	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string
	EnsureSchema  bool

	// AI
	LLMProvider string
	LLMBaseURL  string
	LLMAPIKey   string
	ModelID     string

	ChatTemperature           float64
	ExtractionTemperature     float64
	RecommendationTemperature float64

	// Optional TOML file overriding the embedded prompt templates
	PromptsFile string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := fromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// LoadGraph reads configuration for tools that only talk to Neo4j. Model
// settings are not validated; every Neo4j credential is required.
func LoadGraph() (*Config, error) {
	cfg := fromEnv()
	for field, value := range map[string]string{
		"NEO4J_URI":      cfg.Neo4jURI,
		"NEO4J_USERNAME": cfg.Neo4jUser,
		"NEO4J_PASSWORD": cfg.Neo4jPassword,
	} {
		if value == "" {
			return nil, fmt.Errorf("config validation failed: %w", apperrors.NewConfigMissingRequired(field))
		}
	}
	return cfg, nil
}

func fromEnv() *Config {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	provider := strings.ToLower(getEnv("LLM_PROVIDER", ProviderOpenAI))

	cfg := &Config{
		Port:                      getEnv("PORT", "8080"),
		Env:                       getEnv("ENV", "development"),
		Neo4jURI:                  os.Getenv("NEO4J_URI"),
		Neo4jUser:                 getEnv("NEO4J_USERNAME", os.Getenv("NEO4J_USER")),
		Neo4jPassword:             os.Getenv("NEO4J_PASSWORD"),
		EnsureSchema:              getEnvBool("GRAPH_ENSURE_SCHEMA", false),
		LLMProvider:               provider,
		LLMBaseURL:                os.Getenv("LLM_BASE_URL"),
		LLMAPIKey:                 getEnv("LLM_API_KEY", os.Getenv("GROQ_API_KEY")),
		ModelID:                   getEnv("MODEL_ID", defaultModels[provider]),
		ChatTemperature:           getEnvFloat("CHAT_TEMPERATURE", 0.7),
		ExtractionTemperature:     getEnvFloat("EXTRACTION_TEMPERATURE", 0.3),
		RecommendationTemperature: getEnvFloat("RECOMMENDATION_TEMPERATURE", 0.7),
		PromptsFile:               os.Getenv("PROMPTS_FILE"),
	}

	if cfg.LLMProvider == ProviderOpenAI && cfg.LLMBaseURL == "" {
		cfg.LLMBaseURL = DefaultGroqBaseURL
	}
	return cfg
}

// Validate checks that required configuration values are set.
// Graph credentials are optional; their absence degrades the graph layer.
func (c *Config) Validate() error {
	if _, ok := defaultModels[c.LLMProvider]; !ok {
		return apperrors.NewConfigValidationFailed("LLM_PROVIDER", fmt.Sprintf("unsupported provider %q", c.LLMProvider))
	}
	if c.LLMAPIKey == "" {
		return apperrors.NewConfigMissingRequired("GROQ_API_KEY")
	}
	if c.ModelID == "" {
		return apperrors.NewConfigMissingRequired("MODEL_ID")
	}
	for field, t := range map[string]float64{
		"CHAT_TEMPERATURE":           c.ChatTemperature,
		"EXTRACTION_TEMPERATURE":     c.ExtractionTemperature,
		"RECOMMENDATION_TEMPERATURE": c.RecommendationTemperature,
	} {
		if t < 0 || t > 2 {
			return apperrors.NewConfigValidationFailed(field, "must be between 0 and 2")
		}
	}
	return nil
}

// GraphEnabled reports whether every Neo4j credential is present
func (c *Config) GraphEnabled() bool {
	return c.Neo4jURI != "" && c.Neo4jUser != "" && c.Neo4jPassword != ""
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		var result float64
		if _, err := fmt.Sscanf(value, "%f", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
