package config

import (
	"errors"
	"fmt"
	"net/netip"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// minProductionSecretLen is the shortest JWT secret accepted in production.
const minProductionSecretLen = 32

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	var errs []ValidationError
	require := func(field, value string) {
		if strings.TrimSpace(value) == "" {
			errs = append(errs, ValidationError{Field: field, Message: "is required"})
		}
	}

	require("SERVER_PORT", cfg.ServerPort)
	require("JWT_SECRET", cfg.JWTSecret)

	switch cfg.DBDriver {
	case DriverPostgres:
		require("DB_HOST", cfg.DBHost)
		require("DB_NAME", cfg.DBName)
		require("DB_USER", cfg.DBUser)
	case DriverSQLite:
		require("SQLITE_PATH", cfg.SQLitePath)
		if cfg.Env == Production {
			errs = append(errs, ValidationError{Field: "DB_DRIVER", Message: "sqlite is not supported in production"})
		}
	default:
		errs = append(errs, ValidationError{Field: "DB_DRIVER", Message: fmt.Sprintf("unknown driver %q", cfg.DBDriver)})
	}

	if cfg.RedisURL == "" {
		require("REDIS_HOST", cfg.RedisHost)
	}

	switch cfg.Env {
	case CI:
		// In CI, sensitive values must come from environment variables
		require("DB_PASSWORD", cfg.DBPassword)
	case Production:
		// In production, sensitive values must come from Docker secrets
		require("db_password", cfg.DBPassword)
		require("S3_BUCKET_NAME", cfg.S3Bucket)
		if cfg.RedisURL == "" {
			require("redis_password", cfg.RedisPassword)
		}
		if cfg.JWTSecret != "" && len(cfg.JWTSecret) < minProductionSecretLen {
			errs = append(errs, ValidationError{
				Field:   "jwt_secret",
				Message: fmt.Sprintf("must be at least %d characters", minProductionSecretLen),
			})
		}
	}

	for _, proxy := range cfg.TrustedProxies {
		if !validProxy(proxy) {
			errs = append(errs, ValidationError{Field: "TRUSTED_PROXIES", Message: fmt.Sprintf("%q is not an IP or CIDR", proxy)})
		}
	}

	if cfg.DraftTTL <= 0 {
		errs = append(errs, ValidationError{Field: "DRAFT_TTL", Message: "must be positive"})
	}

	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return errors.New(strings.Join(msgs, "; "))
}

func validProxy(s string) bool {
	if strings.Contains(s, "/") {
		_, err := netip.ParsePrefix(s)
		return err == nil
	}
	_, err := netip.ParseAddr(s)
	return err == nil
}
