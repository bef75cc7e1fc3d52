package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App     AppConfig
	Store   StoreConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Auth    AuthConfig
	Storage StorageConfig
	Upload  UploadConfig
	Slug    SlugConfig
	Worker  WorkerConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	CORSOrigins []string // rỗng = cho phép mọi origin
}

// StoreConfig selects the backend driver behind the repositories.
type StoreConfig struct {
	Driver string // postgres, memory
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret            string
	AccessTokenExpiry int // minutes
}

// AuthConfig: ADMIN_EMAILS là danh sách email (phân cách bằng dấu phẩy) được promote admin
type AuthConfig struct {
	AdminEmails []string
}

type StorageConfig struct {
	Endpoint      string // localhost:9000
	AccessKey     string // minioadmin
	SecretKey     string // minioadmin
	Bucket        string // blog-images
	UseSSL        bool   // false for local
	PublicBaseURL string // overrides http(s)://endpoint/bucket when set
}

type UploadConfig struct {
	MaxBytes     int64
	MaxWidth     int
	Naming       string // uuid, timestamp
	CacheControl string
}

type SlugConfig struct {
	MaxAttempts int
}

// WorkerConfig cho cmd/worker (asynq server)
type WorkerConfig struct {
	Concurrency int
	HealthPort  string
}

const defaultJWTSecret = "your-secret-key-change-in-production"

// Load đọc config từ environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "BlogHub API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			CORSOrigins: getEnvList("CORS_ALLOWED_ORIGINS"),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getEnv("STORE_DRIVER", "postgres")),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", defaultJWTSecret),
			AccessTokenExpiry: getEnvInt("JWT_ACCESS_EXPIRY", 60*24), // 1 day
		},
		Auth: AuthConfig{
			AdminEmails: getEnvList("ADMIN_EMAILS"),
		},
		Storage: StorageConfig{
			Endpoint:      getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey:     getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey:     getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:        getEnv("MINIO_BUCKET", "blog-images"),
			UseSSL:        getEnvBool("MINIO_USE_SSL", false),
			PublicBaseURL: getEnv("MINIO_PUBLIC_BASE_URL", ""),
		},
		Upload: UploadConfig{
			MaxBytes:     int64(getEnvInt("UPLOAD_MAX_BYTES", 5*1024*1024)),
			MaxWidth:     getEnvInt("UPLOAD_MAX_WIDTH", 1600),
			Naming:       strings.ToLower(getEnv("UPLOAD_NAMING", "uuid")),
			CacheControl: getEnv("UPLOAD_CACHE_CONTROL", "max-age=3600"),
		},
		Slug: SlugConfig{
			MaxAttempts: getEnvInt("SLUG_MAX_ATTEMPTS", 1000),
		},
		Worker: WorkerConfig{
			Concurrency: getEnvInt("WORKER_CONCURRENCY", 10),
			HealthPort:  getEnv("WORKER_HEALTH_PORT", "9999"),
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("STORE_DRIVER must be postgres or memory, got %q", c.Store.Driver)
	}

	switch c.Upload.Naming {
	case "uuid", "timestamp":
	default:
		return fmt.Errorf("UPLOAD_NAMING must be uuid or timestamp, got %q", c.Upload.Naming)
	}

	if c.Slug.MaxAttempts < 1 {
		return fmt.Errorf("SLUG_MAX_ATTEMPTS must be positive")
	}

	// Production environment phải có JWT secret
	if c.App.Environment == "production" {
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Store.Driver == "memory" {
			return fmt.Errorf("STORE_DRIVER=memory is not allowed in production")
		}
		if getEnv("DB_PASSWORD", "") == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}

	return nil
}

// IsProduction reports whether the app runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
