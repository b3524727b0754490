package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	ErrMissingJWTSecret = errors.New("JWT_SECRET environment variable is not set")
	ErrUnknownDriver    = errors.New("unknown driver")
)

// This function will Load the ENVIRONMENT VARIABLES from .env if GO_ENV variable is not set
func LoadENV() error {
	goEnv := environment()

	if goEnv == "" || goEnv == "development" {
		// A missing .env is fine, the process environment still applies
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}

	return nil
}

type EnvironmentVariable struct {
	GO_ENV string
	PORT   int

	// Database
	DB_DRIVER          string
	DB_NAME            string
	DB_USER            string
	DB_PASS            string
	DB_HOST            string
	DB_PORT            string
	DB_SSL_MODE        string
	DB_MAX_OPEN_CONNS  int
	DB_ACQUIRE_TIMEOUT time.Duration
	DB_IDLE_TIMEOUT    time.Duration

	// HTTP
	ALLOWED_ORIGINS     string
	RATE_LIMIT_REQUESTS int
	UPLOAD_RATE_LIMIT   int
	MAX_UPLOAD_MB       int

	// JWT Configuration
	JWT_SECRET string
	JWT_ISSUER string
	JWT_EXPIRY time.Duration

	// Redis Configuration
	REDIS_URL        string
	PUBLIC_CACHE_TTL time.Duration

	// File storage
	STORAGE_DRIVER  string
	UPLOAD_DIR      string
	PUBLIC_BASE_URL string

	// DigitalOcean Spaces
	DO_SPACES_KEY      string
	DO_SPACES_SECRET   string
	DO_SPACES_BUCKET   string
	DO_SPACES_REGION   string
	DO_SPACES_ENDPOINT string
	DO_SPACES_CDN_URL  string

	// MinIO
	MINIO_ENDPOINT   string
	MINIO_ACCESS_KEY string
	MINIO_SECRET_KEY string
	MINIO_BUCKET     string
	MINIO_USE_SSL    bool
	MINIO_PUBLIC_URL string

	// Meilisearch
	MEILI_URL     string
	MEILI_API_KEY string

	CRON_ENABLED  bool
	ROLLBAR_TOKEN string

	// Seeded administrator
	ADMIN_EMAIL    string
	ADMIN_PASSWORD string
	ADMIN_NAME     string
}

func Get() (*EnvironmentVariable, error) {
	driver := strings.ToLower(getString("DB_DRIVER", "mysql"))

	defaultDBPort := "3306"
	if driver == "postgres" {
		defaultDBPort = "5432"
	}

	envVariables := &EnvironmentVariable{
		GO_ENV: environment(),
		PORT:   getInt("PORT", 3022),

		DB_DRIVER:          driver,
		DB_NAME:            getString("DB_NAME", "cse_department"),
		DB_USER:            getString("DB_USER", "root"),
		DB_PASS:            os.Getenv("DB_PASS"),
		DB_HOST:            getString("DB_HOST", "localhost"),
		DB_PORT:            getString("DB_PORT", defaultDBPort),
		DB_SSL_MODE:        getString("DB_SSL_MODE", "disable"),
		DB_MAX_OPEN_CONNS:  getInt("DB_MAX_OPEN_CONNS", 5),
		DB_ACQUIRE_TIMEOUT: getDuration("DB_ACQUIRE_TIMEOUT", 30*time.Second),
		DB_IDLE_TIMEOUT:    getDuration("DB_IDLE_TIMEOUT", 10*time.Second),

		ALLOWED_ORIGINS:     getString("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000"),
		RATE_LIMIT_REQUESTS: getInt("RATE_LIMIT_REQUESTS", 100),
		UPLOAD_RATE_LIMIT:   getInt("UPLOAD_RATE_LIMIT", 20),
		MAX_UPLOAD_MB:       getInt("MAX_UPLOAD_MB", 20),

		JWT_SECRET: os.Getenv("JWT_SECRET"),
		JWT_ISSUER: getString("JWT_ISSUER", "cse-cms-api"),
		JWT_EXPIRY: getDuration("JWT_EXPIRY", 24*time.Hour),

		REDIS_URL:        os.Getenv("REDIS_URL"),
		PUBLIC_CACHE_TTL: getDuration("PUBLIC_CACHE_TTL", time.Minute),

		STORAGE_DRIVER:  strings.ToLower(getString("STORAGE_DRIVER", "local")),
		UPLOAD_DIR:      getString("UPLOAD_DIR", "./uploads"),
		PUBLIC_BASE_URL: strings.TrimRight(os.Getenv("PUBLIC_BASE_URL"), "/"),

		DO_SPACES_KEY:      os.Getenv("DO_SPACES_KEY"),
		DO_SPACES_SECRET:   os.Getenv("DO_SPACES_SECRET"),
		DO_SPACES_BUCKET:   os.Getenv("DO_SPACES_BUCKET"),
		DO_SPACES_REGION:   getString("DO_SPACES_REGION", "blr1"),
		DO_SPACES_ENDPOINT: getString("DO_SPACES_ENDPOINT", "blr1.digitaloceanspaces.com"),
		DO_SPACES_CDN_URL:  strings.TrimRight(os.Getenv("DO_SPACES_CDN_URL"), "/"),

		MINIO_ENDPOINT:   os.Getenv("MINIO_ENDPOINT"),
		MINIO_ACCESS_KEY: os.Getenv("MINIO_ACCESS_KEY"),
		MINIO_SECRET_KEY: os.Getenv("MINIO_SECRET_KEY"),
		MINIO_BUCKET:     getString("MINIO_BUCKET", "cms-uploads"),
		MINIO_USE_SSL:    getBool("MINIO_USE_SSL", false),
		MINIO_PUBLIC_URL: strings.TrimRight(os.Getenv("MINIO_PUBLIC_URL"), "/"),

		MEILI_URL:     os.Getenv("MEILI_URL"),
		MEILI_API_KEY: os.Getenv("MEILI_API_KEY"),

		CRON_ENABLED:  getBool("CRON_ENABLED", true),
		ROLLBAR_TOKEN: os.Getenv("ROLLBAR_TOKEN"),

		ADMIN_EMAIL:    getString("ADMIN_EMAIL", "admin@cse.example.edu"),
		ADMIN_PASSWORD: os.Getenv("ADMIN_PASSWORD"),
		ADMIN_NAME:     getString("ADMIN_NAME", "Site Administrator"),
	}

	return envVariables, nil
}

// Validate checks the settings the server cannot start without.
func (e *EnvironmentVariable) Validate() error {
	switch e.DB_DRIVER {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("DB_DRIVER %q: %w", e.DB_DRIVER, ErrUnknownDriver)
	}

	switch e.STORAGE_DRIVER {
	case "local", "spaces", "minio":
	default:
		return fmt.Errorf("STORAGE_DRIVER %q: %w", e.STORAGE_DRIVER, ErrUnknownDriver)
	}

	if e.JWT_SECRET == "" {
		return ErrMissingJWTSecret
	}
	return nil
}

func (e *EnvironmentVariable) IsProduction() bool {
	return e.GO_ENV == "production"
}

// MaxUploadBytes is the largest accepted request body.
func (e *EnvironmentVariable) MaxUploadBytes() int {
	return e.MAX_UPLOAD_MB * 1024 * 1024
}

// GO_ENV wins over NODE_ENV so existing deployments keep working.
func environment() string {
	if env := os.Getenv("GO_ENV"); env != "" {
		return env
	}
	return os.Getenv("NODE_ENV")
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
