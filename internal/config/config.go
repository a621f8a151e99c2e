// Package config loads service configuration from environment variables.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tair/favorites-service/pkg/database"
)

// Config is the full runtime configuration of the favorites service
type Config struct {
	ServiceName     string
	Environment     string
	LogLevel        string
	HTTPPort        string
	GRPCPort        string
	ShutdownTimeout time.Duration

	Database database.Config

	JWTSecret      string
	AccessTokenTTL time.Duration

	Catalog CatalogConfig

	RedisAddr       string
	RedisPassword   string
	LoginRateLimit  int
	LoginRateWindow time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	TracingEnabled bool
	JaegerEndpoint string
}

// CatalogConfig configures the outbound catalog gateway
type CatalogConfig struct {
	BaseURLs       []string
	Timeout        time.Duration
	MaxConcurrency int
	// BreakerFailures is the consecutive upstream failures that open the breaker; 0 disables it
	BreakerFailures int
	BreakerCooldown time.Duration
}

// IsDevelopment reports whether the service runs in development mode
func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Load reads the configuration from the environment, applying defaults
func Load() Config {
	return Config{
		ServiceName:     getEnv("OTEL_SERVICE_NAME", "favorites-service"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		GRPCPort:        getEnv("GRPC_PORT", "9090"),
		ShutdownTimeout: getSeconds("SHUTDOWN_TIMEOUT_SECONDS", 10),
		Database: database.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "favoritesdb"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWTSecret:      getEnv("JWT_SECRET", "change-me-in-production"),
		AccessTokenTTL: time.Duration(getInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute,
		Catalog: CatalogConfig{
			BaseURLs:        getList("CATALOG_URLS", []string{"https://fakestoreapi.com"}),
			Timeout:         time.Duration(getInt("CATALOG_TIMEOUT_MS", 5000)) * time.Millisecond,
			MaxConcurrency:  getInt("CATALOG_MAX_CONCURRENCY", 0),
			BreakerFailures: getInt("CATALOG_BREAKER_MAX_FAILURES", 0),
			BreakerCooldown: getSeconds("CATALOG_BREAKER_COOLDOWN_SECONDS", 30),
		},
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		LoginRateLimit:  getInt("LOGIN_RATE_LIMIT", 10),
		LoginRateWindow: getSeconds("LOGIN_RATE_WINDOW_SECONDS", 60),
		KafkaBrokers:    getList("KAFKA_BROKERS", nil),
		KafkaTopic:      getEnv("KAFKA_TOPIC", "favorites-events"),
		TracingEnabled:  getBool("TRACING_ENABLED", false),
		JaegerEndpoint:  getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

func getSeconds(key string, defaultValue int) time.Duration {
	return time.Duration(getInt(key, defaultValue)) * time.Second
}

func getBool(key string, defaultValue bool) bool {
	b, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return b
}

func getList(key string, defaultValue []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
