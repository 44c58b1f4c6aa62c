package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// OpenRouter
	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	Model             string
	RequestTimeout    time.Duration
	Temperature       float64
	MaxTokens         int

	// Chat
	MaxMessageLength int
	HTTPReferer      string
	AppTitle         string

	// Static assets
	StaticDir string

	// Logging
	LogLevel string
	LogFile  string

	// Frontend (CORS; empty means same-origin only)
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port: getEnvOrDefault("PORT", "8080"),
		Env:  getEnvOrDefault("ENV", "development"),
		// The API key is deliberately optional here: a missing key is a
		// runtime condition reported by /chat as a 500, not a startup crash.
		OpenRouterAPIKey:  getEnvOrDefault("OPENROUTER_API_KEY", ""),
		OpenRouterBaseURL: getEnvOrDefault("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		Model:             getEnvOrDefault("OPENROUTER_MODEL", "openai/gpt-4o-mini"),
		RequestTimeout:    time.Duration(getEnvAsIntOrDefault("REQUEST_TIMEOUT_SECONDS", 30)) * time.Second,
		Temperature:       getEnvAsFloatOrDefault("TEMPERATURE", 0.7),
		MaxTokens:         getEnvAsIntOrDefault("MAX_TOKENS", 512),
		MaxMessageLength:  getEnvAsIntOrDefault("MAX_MESSAGE_LENGTH", 2000),
		HTTPReferer:       getEnvOrDefault("HTTP_REFERER", "http://localhost:8080"),
		AppTitle:          getEnvOrDefault("APP_TITLE", "Voice Learning Robot"),
		StaticDir:         getEnvOrDefault("STATIC_DIR", "./web"),
		LogLevel:          getEnvOrDefault("LOG_LEVEL", "info"),
		LogFile:           getEnvOrDefault("LOG_FILE", ""),
		FrontendURL:       getEnvOrDefault("FRONTEND_URL", ""),
	}

	return cfg
}

// Validate checks the loaded configuration for values that cannot work.
// The API key is not checked: its absence is surfaced per request.
func (c *Config) Validate() error {
	if c.OpenRouterBaseURL == "" {
		return fmt.Errorf("OPENROUTER_BASE_URL must not be empty")
	}
	if c.Model == "" {
		return fmt.Errorf("OPENROUTER_MODEL must not be empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT_SECONDS must be positive, got %s", c.RequestTimeout)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("TEMPERATURE must be between 0 and 2, got %f", c.Temperature)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("MAX_TOKENS must be positive, got %d", c.MaxTokens)
	}
	if c.MaxMessageLength <= 0 {
		return fmt.Errorf("MAX_MESSAGE_LENGTH must be positive, got %d", c.MaxMessageLength)
	}
	return nil
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsFloatOrDefault(key string, defaultVal float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return defaultVal
	}
	return f
}
