// Package config loads environment-driven configuration for the API server.
package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

// Config holds everything the process needs at startup. Load validates the
// required values and returns an error naming every missing key, so a
// misconfigured deployment fails fast instead of limping along.
type Config struct {
	// Server
	Port    int
	Env     string // "development" or "production"
	Origins []string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Session tokens
	JWTSecret    string
	JWTExpiresIn time.Duration

	// Outbound mail
	SMTPHost         string
	SMTPPort         int
	SMTPUser         string
	SMTPPassword     string
	EmailFromName    string
	EmailFromAddress string

	// Client app, used for CORS and for links embedded in emails
	FrontendURL string
}

// IsProduction reports whether the server runs with production cookie flags.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from the environment (a .env file is picked up
// by godotenv/autoload). Missing required values are collected into a
// single error.
func Load() (*Config, error) {
	cfg := &Config{
		Port:             getEnvAsInt("PORT", 8080),
		Env:              getEnv("APP_ENV", "development"),
		DBHost:           os.Getenv("DB_HOST"),
		DBPort:           getEnv("DB_PORT", "5432"),
		DBUser:           os.Getenv("DB_USER"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		DBName:           os.Getenv("DB_NAME"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		JWTExpiresIn:     getEnvAsDuration("JWT_EXPIRES_IN", 7*24*time.Hour),
		SMTPHost:         os.Getenv("SMTP_HOST"),
		SMTPPort:         getEnvAsInt("SMTP_PORT", 587),
		SMTPUser:         os.Getenv("SMTP_USER"),
		SMTPPassword:     os.Getenv("SMTP_PASS"),
		EmailFromName:    getEnv("EMAIL_FROM_NAME", "Todo App"),
		EmailFromAddress: os.Getenv("EMAIL_FROM_ADDRESS"),
		FrontendURL:      os.Getenv("FRONTEND_URL"),
	}

	if cfg.EmailFromAddress == "" {
		cfg.EmailFromAddress = cfg.SMTPUser
	}

	origins := getEnv("CORS_ALLOWED_ORIGINS", cfg.FrontendURL)
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.Origins = append(cfg.Origins, o)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var missing []string
	required := map[string]string{
		"DB_HOST":      c.DBHost,
		"DB_USER":      c.DBUser,
		"DB_PASSWORD":  c.DBPassword,
		"DB_NAME":      c.DBName,
		"JWT_SECRET":   c.JWTSecret,
		"SMTP_HOST":    c.SMTPHost,
		"SMTP_USER":    c.SMTPUser,
		"SMTP_PASS":    c.SMTPPassword,
		"FRONTEND_URL": c.FrontendURL,
	}
	for key, val := range required {
		if val == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		// Stable order makes the error reproducible in logs and tests.
		sort.Strings(missing)
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
