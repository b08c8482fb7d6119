package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration.
type Config struct {
	Port              string        `envconfig:"PORT" default:"8080"`
	Env               string        `envconfig:"ENV" default:"dev"`
	LogLevel          string        `envconfig:"LOG_LEVEL" default:"info"`
	CORSAllowOrigin   []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:5173"`
	DatabaseURL       string        `envconfig:"DATABASE_URL"`
	ObjectStoreType   string        `envconfig:"OBJECT_STORE" default:"local"`
	LocalStoreDir     string        `envconfig:"LOCAL_STORE_DIR" default:"./uploads"`
	UploadsURLPrefix  string        `envconfig:"UPLOADS_URL_PREFIX" default:"/uploads"`
	AWSRegion         string        `envconfig:"AWS_REGION"`
	S3Bucket          string        `envconfig:"S3_BUCKET"`
	S3Prefix          string        `envconfig:"S3_PREFIX"`
	S3Endpoint        string        `envconfig:"S3_ENDPOINT"`
	S3PublicBaseURL   string        `envconfig:"S3_PUBLIC_BASE_URL"`
	S3AccessKeyID     string        `envconfig:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string        `envconfig:"S3_SECRET_ACCESS_KEY"`
	SSEKMSKeyID       string        `envconfig:"SSE_KMS_KEY_ID"`
	JWTSecret         string        `envconfig:"JWT_SECRET"`
	TokenTTL          time.Duration `envconfig:"TOKEN_TTL" default:"168h"`
	AdminUsername     string        `envconfig:"ADMIN_USERNAME" default:"admin"`
	AdminPassword     string        `envconfig:"ADMIN_PASSWORD" default:"admin123"`
	RateLimitPerMin   int           `envconfig:"RATE_LIMIT_PER_MINUTE" default:"120"`
	MaxUploadBytes    int64         `envconfig:"MAX_UPLOAD_BYTES" default:"26214400"`
	MaxPropertyImages int           `envconfig:"MAX_PROPERTY_IMAGES" default:"12"`
	SeedOnStart       bool          `envconfig:"SEED_ON_START" default:"true"`
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (Config, error) {
	// Best-effort load of local env files for dev convenience.
	for _, path := range []string{".env", "cmd/.env"} {
		_ = godotenv.Load(path)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("process environment config: %w", err)
	}
	cfg.Normalize()

	if cfg.Env == "production" {
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("DATABASE_URL is required in production")
		}
		if strings.TrimSpace(cfg.JWTSecret) == "" {
			return Config{}, fmt.Errorf("JWT_SECRET is required in production")
		}
	}
	return cfg, nil
}

// Normalize fills defaults and canonicalizes values. It is safe to call on a
// hand-built Config, which is what tests do.
func (c *Config) Normalize() {
	c.Env = normalizeEnv(c.Env)
	c.ObjectStoreType = normalizeStoreType(c.ObjectStoreType)
	c.CORSAllowOrigin = trimAll(c.CORSAllowOrigin)
	if c.Port == "" {
		c.Port = "8080"
	}
	if c.LocalStoreDir == "" {
		c.LocalStoreDir = "./uploads"
	}
	c.UploadsURLPrefix = "/" + strings.Trim(strings.TrimSpace(c.UploadsURLPrefix), "/")
	if c.UploadsURLPrefix == "/" {
		c.UploadsURLPrefix = "/uploads"
	}
	if strings.TrimSpace(c.JWTSecret) == "" && c.Env != "production" {
		c.JWTSecret = "dev-secret"
	}
	if c.TokenTTL <= 0 {
		c.TokenTTL = 7 * 24 * time.Hour
	}
	if c.AdminUsername == "" {
		c.AdminUsername = "admin"
	}
	if c.RateLimitPerMin <= 0 {
		c.RateLimitPerMin = 120
	}
	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = 25 << 20
	}
	if c.MaxPropertyImages <= 0 {
		c.MaxPropertyImages = 12
	}
}

// IsDevLike reports whether in-memory fallbacks are acceptable.
func (c Config) IsDevLike() bool {
	return c.Env == "dev" || c.Env == "local"
}

func trimAll(in []string) []string {
	var out []string
	for _, p := range in {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}
