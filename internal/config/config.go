package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App     AppConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Admin   AdminConfig
	Email   EmailConfig
	Storage StorageConfig
	Upload  UploadConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	CORSOrigin  string // SPA frontend origin
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

// AdminConfig giữ fixed admin credential pair + fallback contact email.
// PasswordHash (bcrypt) là optional upgrade path thay cho plaintext Password.
type AdminConfig struct {
	Username     string
	Password     string
	PasswordHash string
	ContactEmail string // fallback khi settings row chưa tồn tại
}

type EmailConfig struct {
	SMTPHost string
	SMTPPort string
	From     string
}

// StorageConfig chọn image storage backend theo environment:
// "minio" (prod), "local" (dev), "memory" (inline data: URI)
type StorageConfig struct {
	Driver string

	// MinIO (remote hosting)
	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOUseSSL    bool

	// Local disk
	LocalDir string // thư mục lưu file, serve dưới /uploads
}

type UploadConfig struct {
	MaxSizeBytes int64 // size cap cho image upload
	MaxEdgePx    int   // downscale ảnh lớn hơn cạnh này trước khi lưu
}

// Load đọc config từ environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Medieval Commanders API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			CORSOrigin:  getEnv("CORS_ORIGIN", "*"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			ExpiryHours: getEnvInt("JWT_EXPIRY_HOURS", 24),
		},
		Admin: AdminConfig{
			Username:     getEnv("ADMIN_USERNAME", "admin"),
			Password:     getEnv("ADMIN_PASSWORD", ""),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
			ContactEmail: getEnv("ADMIN_CONTACT_EMAIL", "admin@medievalcommanders.com"),
		},
		Email: EmailConfig{
			SMTPHost: getEnv("SMTP_HOST", "localhost"),
			SMTPPort: getEnv("SMTP_PORT", "1025"),
			From:     getEnv("EMAIL_FROM", "noreply@medievalcommanders.com"),
		},
		Storage: StorageConfig{
			Driver:         getEnv("STORAGE_DRIVER", "local"),
			MinIOEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			MinIOAccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			MinIOSecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			MinIOBucket:    getEnv("MINIO_BUCKET", "commanders"),
			MinIOUseSSL:    getEnv("MINIO_USE_SSL", "false") == "true",
			LocalDir:       getEnv("UPLOAD_DIR", "./uploads"),
		},
		Upload: UploadConfig{
			MaxSizeBytes: int64(getEnvInt("UPLOAD_MAX_SIZE_MB", 5)) * 1024 * 1024,
			MaxEdgePx:    getEnvInt("UPLOAD_MAX_EDGE_PX", 1600),
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
	// Production environment phải có secrets thật
	if c.App.Environment == "production" {
		if c.JWT.Secret == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Admin.Password == "" && c.Admin.PasswordHash == "" {
			return fmt.Errorf("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH must be set in production")
		}
		if c.Storage.Driver == "memory" {
			fmt.Println("WARNING: memory storage driver in production - images will be inlined as data URIs")
		}
	}

	switch c.Storage.Driver {
	case "minio", "local", "memory":
	default:
		return fmt.Errorf("invalid STORAGE_DRIVER %q (minio|local|memory)", c.Storage.Driver)
	}

	return nil
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
