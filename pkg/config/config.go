package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	ServerPort string
	BaseURL    string

	// Database
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis (optional; caching and rate limiting are skipped when unset)
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Identity
	IdentitySecret string

	// Assets
	AssetBackend string // "local" or "s3"
	UploadDir    string

	// AWS S3
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSEndpoint        string
	S3BucketName       string
	S3UseSSL           string

	// Uploads
	FileNameLen  int
	FileMaxWidth int

	// Post identifiers
	CodeLen int
	SlugLen int

	// AMP
	AMPIframePlaceholder string
}

func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	config := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		BaseURL:    getEnv("BASE_URL", ""),

		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "storypad"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		SQLitePath: getEnv("SQLITE_PATH", "storypad.db"),

		RedisHost:     getEnv("REDIS_HOST", ""),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       0,

		IdentitySecret: getEnv("IDENTITY_SECRET", "change-me-in-production"),

		AssetBackend: getEnv("ASSET_BACKEND", "local"),
		UploadDir:    getEnv("UPLOAD_DIR", "upload"),

		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpoint:        getEnv("AWS_ENDPOINT", ""),
		S3BucketName:       getEnv("S3_BUCKET_NAME", "storypad-content"),
		S3UseSSL:           getEnv("S3_USE_SSL", "true"),

		FileNameLen:  getEnvInt("FILE_NAME_LEN", 32),
		FileMaxWidth: getEnvInt("FILE_MAX_WIDTH", 1200),

		CodeLen: getEnvInt("CODE_LEN", 14),
		SlugLen: getEnvInt("SLUG_LEN", 7),

		AMPIframePlaceholder: getEnv("AMP_IFRAME_PLACEHOLDER", "/static/amp_iframe_placeholder.png"),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
