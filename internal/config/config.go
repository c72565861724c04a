package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
// It is the single source of truth for runtime parameters.
type Config struct {
	Port      string
	Env       string
	JWTSecret string
	JWTTTL    time.Duration

	Mongo  MongoConfig
	Redis  RedisConfig
	Admin  AdminConfig
	Worker WorkerConfig
}

// MongoConfig contains MongoDB connection parameters.
type MongoConfig struct {
	URI      string
	Database string
}

// RedisConfig contains Redis connection parameters. An empty Host
// disables the catalog cache entirely.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	CacheTTL time.Duration
}

// AdminConfig contains the bootstrap admin account. When Email is set,
// the account is created at startup if it does not exist yet.
type AdminConfig struct {
	Email    string
	Password string
}

// WorkerConfig contains interval configuration for background workers.
type WorkerConfig struct {
	OfferExpiryInterval      time.Duration
	TransactionSweepInterval time.Duration
	TransactionMaxPending    time.Duration
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first. It returns a populated
// Config or an error with a human-friendly message.
func Load() (*Config, error) {
	// Load .env if present; ignore error if file is missing so that production
	// environments relying solely on real environment variables keep working.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("ENV", "development")
	cfg.JWTSecret = getEnv("JWT_SECRET", "")

	// MongoDB
	cfg.Mongo = MongoConfig{
		URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		Database: getEnv("MONGO_DB", "storefront"),
	}

	// Redis
	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", ""),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	// Bootstrap admin
	cfg.Admin = AdminConfig{
		Email:    getEnv("ADMIN_EMAIL", ""),
		Password: getEnv("ADMIN_PASSWORD", ""),
	}

	var err error
	if cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", "24h"); err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}
	if cfg.Redis.CacheTTL, err = parseDurationEnv("CATALOG_CACHE_TTL", "5m"); err != nil {
		return nil, fmt.Errorf("invalid CATALOG_CACHE_TTL: %w", err)
	}

	// Workers (durations)
	if cfg.Worker.OfferExpiryInterval, err = parseDurationEnv("OFFER_EXPIRY_INTERVAL", "15m"); err != nil {
		return nil, fmt.Errorf("invalid OFFER_EXPIRY_INTERVAL: %w", err)
	}
	if cfg.Worker.TransactionSweepInterval, err = parseDurationEnv("TRANSACTION_SWEEP_INTERVAL", "10m"); err != nil {
		return nil, fmt.Errorf("invalid TRANSACTION_SWEEP_INTERVAL: %w", err)
	}
	if cfg.Worker.TransactionMaxPending, err = parseDurationEnv("TRANSACTION_MAX_PENDING", "24h"); err != nil {
		return nil, fmt.Errorf("invalid TRANSACTION_MAX_PENDING: %w", err)
	}

	// Basic validation — keeps messages concise and helpful.
	if cfg.Mongo.URI == "" || cfg.Mongo.Database == "" {
		return nil, errors.New("mongo configuration incomplete: ensure MONGO_URI and MONGO_DB are set")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set for authentication")
	}
	if cfg.Admin.Email != "" && len(cfg.Admin.Password) < 6 {
		return nil, errors.New("ADMIN_PASSWORD must be at least 6 characters when ADMIN_EMAIL is set")
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// parseDurationEnv reads an environment variable and parses it as time.Duration.
// If the variable is empty, it falls back to the provided default value.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be >= 0")
	}
	return d, nil
}
