package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every externally supplied setting of the service.
// Inputs that used to be hardcoded (statement file, user id, service URLs,
// credentials) all live here.
type Config struct {
	Port        string
	GinMode     string
	Environment string
	LogLevel    string

	AllowedOrigins []string

	// Sources
	TransactionsPath string
	DefaultUserID    int

	// Health service
	HealthServiceURL string
	HealthTimeout    time.Duration

	// Text generation
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	OpenAIModel     string
	OpenAIMaxTokens int
	OpenAITimeout   time.Duration

	RateLimitPerMinute int
}

// Load reads the optional .env file and the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	frontendURL := envStr("FRONTEND_URL", "http://localhost:3000")
	origins := []string{frontendURL}
	if extra := envStr("CORS_ALLOWED_ORIGINS", ""); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			if o = strings.TrimSpace(o); o != "" && o != frontendURL {
				origins = append(origins, o)
			}
		}
	}

	return &Config{
		Port:        envStr("PORT", "8080"),
		GinMode:     envStr("GIN_MODE", "debug"),
		Environment: envStr("ENVIRONMENT", "development"),
		LogLevel:    envStr("LOG_LEVEL", "info"),

		AllowedOrigins: origins,

		TransactionsPath: envStr("TRANSACTIONS_PATH", "Statement_2025_3.csv"),
		DefaultUserID:    envInt("DEFAULT_USER_ID", 10),

		HealthServiceURL: strings.TrimRight(envStr("HEALTH_SERVICE_URL", "https://health-service.azurewebsites.net"), "/"),
		HealthTimeout:    envDuration("HEALTH_TIMEOUT", 15*time.Second),

		OpenAIAPIKey:    envStr("OPENAI_API_KEY", ""),
		OpenAIBaseURL:   strings.TrimRight(envStr("OPENAI_BASE_URL", "https://api.openai.com/v1"), "/"),
		OpenAIModel:     envStr("OPENAI_MODEL", "gpt-4.1"),
		OpenAIMaxTokens: envInt("OPENAI_MAX_TOKENS", 200),
		OpenAITimeout:   envDuration("OPENAI_TIMEOUT", 60*time.Second),

		RateLimitPerMinute: envInt("RATE_LIMIT_PER_MINUTE", 100),
	}
}

// IsProduction reports whether sensitive values must be masked in logs.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release" || c.Environment == "production"
}

func (c *Config) Validate() error {
	var errs []string

	if c.TransactionsPath == "" {
		errs = append(errs, "TRANSACTIONS_PATH is required")
	}
	if c.DefaultUserID <= 0 {
		errs = append(errs, "DEFAULT_USER_ID must be a positive integer")
	}
	if !validURL(c.HealthServiceURL) {
		errs = append(errs, fmt.Sprintf("HEALTH_SERVICE_URL is not a valid URL: %q", c.HealthServiceURL))
	}
	if !validURL(c.OpenAIBaseURL) {
		errs = append(errs, fmt.Sprintf("OPENAI_BASE_URL is not a valid URL: %q", c.OpenAIBaseURL))
	}
	if c.OpenAIMaxTokens <= 0 {
		errs = append(errs, "OPENAI_MAX_TOKENS must be positive")
	}
	if c.RateLimitPerMinute <= 0 {
		errs = append(errs, "RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.OpenAIAPIKey == "" {
		log.Println("[WARN] OPENAI_API_KEY not set, /analyze-stress will be rejected by the text-generation service")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

func (c *Config) Print() {
	log.Println("=== Stress API Configuration ===")
	log.Printf("Mode: %s (production: %v)", c.GinMode, c.IsProduction())
	log.Printf("Port: %s", c.Port)
	log.Printf("Transactions: %s", c.TransactionsPath)
	log.Printf("Default user: %d", c.DefaultUserID)
	log.Printf("Health service: %s (timeout %s)", c.HealthServiceURL, c.HealthTimeout)
	log.Printf("Text generation: %s model=%s max_tokens=%d key=%s",
		c.OpenAIBaseURL, c.OpenAIModel, c.OpenAIMaxTokens, boolLabel(c.OpenAIAPIKey != "", "configured", "not set"))
	log.Printf("Rate limit: %d req/min", c.RateLimitPerMinute)
	log.Println("CORS origins:")
	for _, origin := range c.AllowedOrigins {
		log.Printf("   - %s", origin)
	}
}

// --- helpers ---

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("[WARN] invalid integer for %s=%q, using %d", key, v, fallback)
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
		log.Printf("[WARN] invalid duration for %s=%q, using %s", key, v, fallback)
	}
	return fallback
}

func validURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func boolLabel(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
