package config

import (
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string

	// Deployment artifacts, resolved relative to DeploymentDir
	DeploymentDir string
	ModelFile     string
	FeaturesFile  string
	ClassesFile   string

	// CORS
	CORSOrigins string // Comma-separated allowed origins, "*" for any

	// Rate limiting
	RateLimitMax    int
	RateLimitWindow time.Duration
	RedisURL        string // Shared limiter storage; in-memory when empty

	// Prediction cache entries, 0 disables
	CacheSize int

	// Canary prediction interval, 0 disables
	CanaryInterval time.Duration

	// Logging
	LogLevel  string
	LogFormat string
	LogFile   string

	// Site Branding
	SiteTitle   string // env: SITE_TITLE, default: "CardioServe"
	SiteTagline string // env: SITE_TAGLINE
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:        getEnv("ENV", "development"),
		ServerAddr: withPort(getEnv("SERVER_ADDR", ":5000"), os.Getenv("PORT")),

		DeploymentDir: getEnv("DEPLOYMENT_DIR", "deployment"),
		ModelFile:     getEnv("MODEL_FILE", "heart_disease_best_model.bin"),
		FeaturesFile:  getEnv("FEATURES_FILE", "feature_columns.txt"),
		ClassesFile:   getEnv("CLASSES_FILE", "class_names.txt"),

		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		RateLimitMax:    getEnvInt("RATE_LIMIT_MAX", 100),
		RateLimitWindow: getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
		RedisURL:        getEnv("REDIS_URL", ""),

		CacheSize:      getEnvInt("CACHE_SIZE", 256),
		CanaryInterval: getEnvInterval("CANARY_INTERVAL", 5*time.Minute),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
		LogFile:   getEnv("LOG_FILE", ""),

		SiteTitle:   getEnv("SITE_TITLE", "CardioServe"),
		SiteTagline: getEnv("SITE_TAGLINE", "Heart disease risk prediction"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return fallback
}

// getEnvInterval is like getEnvDuration but accepts "0" to disable.
func getEnvInterval(key string, fallback time.Duration) time.Duration {
	if os.Getenv(key) == "0" {
		return 0
	}
	return getEnvDuration(key, fallback)
}

// withPort replaces the port of addr when port is set.
func withPort(addr, port string) string {
	if port == "" {
		return addr
	}
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = ""
	}
	return net.JoinHostPort(host, port)
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// ModelPath returns the full path of the model artifact.
func (c *Config) ModelPath() string {
	return c.deploymentPath(c.ModelFile)
}

// FeaturesPath returns the full path of the feature list.
func (c *Config) FeaturesPath() string {
	return c.deploymentPath(c.FeaturesFile)
}

// ClassesPath returns the full path of the class list.
func (c *Config) ClassesPath() string {
	return c.deploymentPath(c.ClassesFile)
}

func (c *Config) deploymentPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DeploymentDir, name)
}
