package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	AuthModePlaceholder = "placeholder"
	AuthModeStore       = "store"

	PostsSourceStatic = "static"
	PostsSourceDB     = "db"

	minSecretLength = 16
)

var ErrMissingSecret = errors.New("SECRET_KEY environment variable not set")

// trivialSecrets are rejected even when long enough to pass the length check.
var trivialSecrets = []string{"secret", "changeme", "very hard string", "password", "development"}

type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string
}

func (s SMTPConfig) Enabled() bool {
	return s.Host != ""
}

type Config struct {
	SecretKey      string
	SQLitePath     string
	DatabaseURL    string
	Port           string
	Debug          bool
	SessionName    string
	AuthMode       string
	PostsSource    string
	RateLimitRPS   float64
	RateLimitBurst int
	SMTP           SMTPConfig
}

// Load reads .env (when present) and the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() (Config, error) {
	cfg := Config{
		SecretKey:      os.Getenv("SECRET_KEY"),
		SQLitePath:     getenv("SQLITE_DB", "site.db"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		Port:           getenv("PORT", "8080"),
		Debug:          getEnvAsBool("DEBUG", false),
		SessionName:    getenv("SESSION_NAME", "socialblog-session"),
		AuthMode:       strings.ToLower(getenv("AUTH_MODE", AuthModePlaceholder)),
		PostsSource:    strings.ToLower(getenv("POSTS_SOURCE", PostsSourceStatic)),
		RateLimitRPS:   getEnvAsFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", 10),
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getenv("SMTP_PORT", "587"),
			User:     os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("SMTP_FROM"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := ValidateSecret(c.SecretKey); err != nil {
		return err
	}

	switch c.AuthMode {
	case AuthModePlaceholder, AuthModeStore:
	default:
		return fmt.Errorf("unknown AUTH_MODE %q", c.AuthMode)
	}

	switch c.PostsSource {
	case PostsSourceStatic, PostsSourceDB:
	default:
		return fmt.Errorf("unknown POSTS_SOURCE %q", c.PostsSource)
	}

	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return errors.New("rate limit values must be positive")
	}
	return nil
}

// ValidateSecret rejects empty, short and well-known session keys.
func ValidateSecret(secret string) error {
	if secret == "" {
		return ErrMissingSecret
	}
	if len(secret) < minSecretLength {
		return fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretLength)
	}
	lower := strings.ToLower(secret)
	for _, t := range trivialSecrets {
		if strings.Trim(lower, "0123456789!_-. ") == t {
			return errors.New("SECRET_KEY is a well-known placeholder value")
		}
	}
	return nil
}

// UsesPostgres reports whether DatabaseURL selects the postgres driver.
func (c Config) UsesPostgres() bool {
	return strings.HasPrefix(c.DatabaseURL, "postgres://") ||
		strings.HasPrefix(c.DatabaseURL, "postgresql://")
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
