// Package config handles broker configuration and environment loading.
package config

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Service types the broker can be configured to offer.
const (
	ServiceTypeBookStore = "bookstore"
	ServiceTypeKeyValue  = "keyvalue"
)

// Config holds the configuration for the broker HTTP API.
type Config struct {
	ListenAddr  string // HTTP listen address (default ":8080")
	DBPath      string // path to SQLite database file
	BaseURL     string // externally reachable base URL, used in binding credentials
	BrokerName  string // broker name used when deriving escrow secret names
	ServiceType string // "bookstore" (default) or "keyvalue"
	CatalogPath string // optional path to a catalog YAML file

	JWTSecret     string // HS256 shared secret for bearer-token auth
	AdminPassword string // bootstrap admin password, rotated by the operator
	EncryptionKey string // 64-char hex string (32-byte AES key); enables the secret escrow

	LogLevel string // log level: debug, info, warn, error (default "info")
	Env      string // environment: "development" (default) or "production"

	// Rate limiting
	RateLimitRPS   float64 // sustained requests per second (default 100)
	RateLimitBurst int     // burst capacity (default 200)

	// CORS
	CORSAllowedOrigins []string // allowed origins (default: ["*"])

	// Warnings collects non-fatal warnings generated during config loading.
	// These are logged by the caller after the logger is initialised.
	Warnings []string
}

// SlogLevel maps the LogLevel string to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IsProduction returns true when the broker is running in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// EscrowEnabled returns true when an encryption key is configured, which
// switches binding credentials to the escrowed-reference workflow.
func (c *Config) EscrowEnabled() bool {
	return c.EncryptionKey != ""
}

// LoadFromEnv loads configuration from environment variables and applies
// defaults. Insecure defaults are fatal in production mode.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		ListenAddr:    os.Getenv("LISTEN_ADDR"),
		DBPath:        os.Getenv("DB_PATH"),
		BaseURL:       os.Getenv("BASE_URL"),
		BrokerName:    os.Getenv("BROKER_NAME"),
		ServiceType:   os.Getenv("SERVICE_TYPE"),
		CatalogPath:   os.Getenv("CATALOG_PATH"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		AdminPassword: os.Getenv("BROKER_ADMIN_PASSWORD"),
		EncryptionKey: os.Getenv("ENCRYPTION_KEY"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		Env:           os.Getenv("ENV"),
	}

	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.RateLimitRPS = f
		}
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RateLimitBurst = n
		}
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		cfg.CORSAllowedOrigins = origins
	}

	// Defaults
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "bookstore_broker.sqlite"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
		cfg.Warnings = append(cfg.Warnings, "BASE_URL not set, binding credentials will point at localhost")
	}
	if cfg.BrokerName == "" {
		cfg.BrokerName = "bookstore-broker"
	}
	if cfg.ServiceType == "" {
		cfg.ServiceType = ServiceTypeBookStore
	}
	if cfg.ServiceType != ServiceTypeBookStore && cfg.ServiceType != ServiceTypeKeyValue {
		return nil, fmt.Errorf("SERVICE_TYPE must be %q or %q, got %q",
			ServiceTypeBookStore, ServiceTypeKeyValue, cfg.ServiceType)
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-secret-change-in-production"
		cfg.Warnings = append(cfg.Warnings, "JWT_SECRET not set, using insecure default")
	}
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = "supersecret"
		cfg.Warnings = append(cfg.Warnings, "BROKER_ADMIN_PASSWORD not set, using well-known default that should be rotated")
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.RateLimitRPS == 0 {
		cfg.RateLimitRPS = 100
	}
	if cfg.RateLimitBurst == 0 {
		cfg.RateLimitBurst = 200
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = []string{"*"}
	}

	// Production mode: insecure defaults are fatal errors.
	if cfg.IsProduction() {
		if cfg.JWTSecret == "dev-secret-change-in-production" {
			return nil, fmt.Errorf("JWT_SECRET must be set in production (ENV=production)")
		}
		if cfg.AdminPassword == "supersecret" {
			return nil, fmt.Errorf("BROKER_ADMIN_PASSWORD must be set in production (ENV=production)")
		}
		if len(cfg.CORSAllowedOrigins) == 1 && cfg.CORSAllowedOrigins[0] == "*" {
			return nil, fmt.Errorf("CORS wildcard (*) is not allowed in production (ENV=production)")
		}
	}

	return cfg, nil
}

// LoadDotEnv reads a .env file and sets any variables not already in the
// environment. Lines must be in KEY=VALUE format. Comments (#) and blank
// lines are skipped.
func LoadDotEnv(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // .env not found is not an error
		}
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = stripQuotes(strings.TrimSpace(value))
		// Env vars take precedence over the .env file.
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("setenv %s: %w", key, err)
			}
		}
	}
	return scanner.Err()
}

// stripQuotes removes surrounding double or single quotes from a value.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
