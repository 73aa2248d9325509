package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Database drivers understood by internal/database.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all configuration for the application
type Config struct {
	Env Environment

	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string
	// TrustedProxies lists the proxy IPs or CIDRs whose forwarding headers
	// identify the client. Empty trusts none.
	TrustedProxies []string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// Logging
	LogLevel  string
	LogFormat string

	// Meal photo storage
	S3Bucket   string
	AWSRegion  string
	S3Endpoint string

	// Onboarding drafts expire after DraftTTL of inactivity.
	DraftTTL time.Duration
	// MealAnalysisLimit is the number of photo analyses allowed per user per day.
	MealAnalysisLimit int
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := defaults(env)

	// Load configuration based on environment
	switch env {
	case CI:
		if err := loadCIConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load CI configuration: %w", err)
		}
	case Development, Test:
		if err := loadDevConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load development configuration: %w", err)
		}
	case Production:
		loadProdConfig(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func defaults(env Environment) *Config {
	return &Config{
		Env:               env,
		ServerPort:        "8080",
		ServerHost:        "0.0.0.0",
		CORSOrigins:       []string{"http://localhost:8081", "http://localhost:19006"},
		DBDriver:          DriverPostgres,
		DBPort:            "5432",
		DBSSLMode:         "disable",
		SQLitePath:        "nutrilens.db",
		RedisPort:         "6379",
		LogLevel:          "info",
		LogFormat:         "json",
		S3Bucket:          "nutrilens-meal-photos",
		DraftTTL:          24 * time.Hour,
		MealAnalysisLimit: 30,
	}
}

// loadCIConfig loads configuration for CI environment using ONLY GitHub Actions secrets
func loadCIConfig(cfg *Config) error {
	applyEnv(cfg)

	// GitHub Actions secrets - use environment variables directly
	cfg.DBPassword = os.Getenv("TEST_DB_PASSWORD")
	if cfg.DBPassword == "" {
		return fmt.Errorf("TEST_DB_PASSWORD environment variable is required in CI environment")
	}
	cfg.JWTSecret = os.Getenv("TEST_JWT_SECRET")
	cfg.RedisPassword = os.Getenv("TEST_REDIS_PASSWORD")
	if url := os.Getenv("TEST_REDIS_URL"); url != "" {
		cfg.RedisURL = url
	}
	return nil
}

// loadDevConfig reads an optional .env file, then environment variables,
// then Docker secrets for anything sensitive that is still unset.
func loadDevConfig(cfg *Config) error {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	applyEnv(cfg)
	applySecrets(cfg, false)
	if cfg.LogFormat == "json" && os.Getenv("LOG_FORMAT") == "" {
		cfg.LogFormat = "text"
	}
	return nil
}

// loadProdConfig loads configuration for production. Sensitive values come
// ONLY from Docker secrets.
func loadProdConfig(cfg *Config) {
	applyEnv(cfg)
	cfg.DBUser, cfg.DBPassword, cfg.JWTSecret, cfg.RedisPassword = "", "", "", ""
	applySecrets(cfg, true)
}

func applyEnv(cfg *Config) {
	setString(&cfg.ServerPort, "SERVER_PORT")
	setString(&cfg.ServerHost, "SERVER_HOST")
	setString(&cfg.DBDriver, "DB_DRIVER")
	setString(&cfg.DBHost, "DB_HOST")
	setString(&cfg.DBPort, "DB_PORT")
	setString(&cfg.DBUser, "DB_USER")
	setString(&cfg.DBPassword, "DB_PASSWORD")
	setString(&cfg.DBName, "DB_NAME")
	setString(&cfg.DBSSLMode, "DB_SSL_MODE")
	setString(&cfg.SQLitePath, "SQLITE_PATH")
	setString(&cfg.RedisHost, "REDIS_HOST")
	setString(&cfg.RedisPort, "REDIS_PORT")
	setString(&cfg.RedisPassword, "REDIS_PASSWORD")
	setString(&cfg.RedisURL, "REDIS_URL")
	setString(&cfg.JWTSecret, "JWT_SECRET")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.LogFormat, "LOG_FORMAT")
	setString(&cfg.S3Bucket, "S3_BUCKET_NAME")
	setString(&cfg.AWSRegion, "AWS_REGION")
	setString(&cfg.S3Endpoint, "S3_ENDPOINT")

	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RedisDB = n
		}
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("TRUSTED_PROXIES"); v != "" {
		cfg.TrustedProxies = splitList(v)
	}
	if v := os.Getenv("DRAFT_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.DraftTTL = d
		}
	}
	if v := os.Getenv("MEAL_ANALYSIS_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MealAnalysisLimit = n
		}
	}
}

// applySecrets fills sensitive fields from the secrets directory. Unless
// override is set, values already present are kept.
func applySecrets(cfg *Config, override bool) {
	for name, dst := range map[string]*string{
		"db_user":        &cfg.DBUser,
		"db_password":    &cfg.DBPassword,
		"jwt_secret":     &cfg.JWTSecret,
		"redis_password": &cfg.RedisPassword,
		"redis_url":      &cfg.RedisURL,
	} {
		if *dst != "" && !override {
			continue
		}
		if v := readSecret(name); v != "" {
			*dst = v
		}
	}
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// secretsDir returns the Docker secrets directory
func secretsDir() string {
	if dir := os.Getenv("SECRETS_DIR"); dir != "" {
		return dir
	}
	return "/run/secrets"
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	data, err := os.ReadFile(filepath.Join(secretsDir(), name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// DSN returns the Postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// DatabaseURL returns the Postgres connection URL used by the migrate tool.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}
