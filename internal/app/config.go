package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config dibaca dari environment; .env dimuat di main lewat godotenv.
type Config struct {
	Port              string
	UpstreamBaseURL   string
	UpstreamTimeout   time.Duration
	RedisAddr         string
	DBHost            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBPort            string
	DBSSLMode         string
	KafkaBroker       string
	RBACModelPath     string
	RBACPolicyPath    string
	JWTSecret         string
	EditingSessionTTL time.Duration
	OutboxPollEvery   time.Duration
	ConnectRetries    int
}

func LoadConfig() (Config, error) {
	cfg := Config{
		Port:            getEnv("PORT", "3000"),
		UpstreamBaseURL: os.Getenv("UPSTREAM_BASE_URL"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		DBHost:          os.Getenv("DB_HOST"),
		DBUser:          os.Getenv("DB_USER"),
		DBPassword:      os.Getenv("DB_PASSWORD"),
		DBName:          os.Getenv("DB_NAME"),
		DBPort:          getEnv("DB_PORT", "5432"),
		DBSSLMode:       getEnv("DB_SSLMODE", "disable"),
		KafkaBroker:     os.Getenv("KAFKA_BROKER"),
		RBACModelPath:   os.Getenv("RBAC_MODEL_PATH"),
		RBACPolicyPath:  os.Getenv("RBAC_POLICY_PATH"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
	}

	var err error
	if cfg.UpstreamTimeout, err = getDuration("UPSTREAM_TIMEOUT", 15*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.EditingSessionTTL, err = getDuration("EDITING_SESSION_TTL", 30*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.OutboxPollEvery, err = getDuration("OUTBOX_POLL_INTERVAL", 3*time.Second); err != nil {
		return Config{}, err
	}

	retries := getEnv("CONNECT_RETRIES", "5")
	if cfg.ConnectRetries, err = strconv.Atoi(retries); err != nil || cfg.ConnectRetries < 1 {
		return Config{}, fmt.Errorf("CONNECT_RETRIES must be a positive integer, got %q", retries)
	}

	return cfg, nil
}

// Validate memeriksa nilai yang wajib untuk API.
func (c Config) Validate() error {
	if c.UpstreamBaseURL == "" {
		return fmt.Errorf("UPSTREAM_BASE_URL is required")
	}
	if c.DBHost == "" || c.DBName == "" {
		return fmt.Errorf("DB_HOST and DB_NAME are required")
	}
	// token HS256 dengan key kosong tetap "valid", jadi tolak dari awal
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, v)
	}
	return d, nil
}
