package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Supported document store backends.
const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
)

// MongoConfig holds MongoDB connection settings.
type MongoConfig struct {
	URI        string
	Database   string
	TimeoutSec int
}

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for property images.
// PublicURL, when set, is the base clients use to download objects.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string
}

// Enabled reports whether object storage was configured at all.
func (c MinIOConfig) Enabled() bool {
	return c.Endpoint != ""
}

// RabbitMQConfig holds the broker used for property change events.
type RabbitMQConfig struct {
	URL      string
	Exchange string
}

func (c RabbitMQConfig) Enabled() bool {
	return c.URL != ""
}

// LogConfig controls the slog handler built at startup.
type LogConfig struct {
	Level      string
	Format     string // json, text or tint
	TimeZone   string
	FluentHost string
	FluentPort int
	FluentTag  string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost          string
	Port             string
	StoreDriver      string
	SeedData         bool
	CORSAllowOrigins string
	Mongo            MongoConfig
	Database         DatabaseConfig
	MinIO            MinIOConfig
	RabbitMQ         RabbitMQConfig
	Log              LogConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:          getEnv("APP_HOST", "localhost:8080"),
		Port:             getEnv("PORT", "8080"), // default only for non-sensitive value
		StoreDriver:      strings.ToLower(getEnv("STORE_DRIVER", StoreMongo)),
		SeedData:         getEnvBool("SEED_DATA", true),
		CORSAllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
		Mongo: MongoConfig{
			URI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database:   getEnv("MONGO_DATABASE", "realestate"),
			TimeoutSec: getEnvInt("MONGO_TIMEOUT_SEC", 10),
		},
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
			PublicURL: getEnv("MINIO_PUBLIC_URL", ""),
		},
		RabbitMQ: RabbitMQConfig{
			URL:      getEnv("RABBITMQ_URL", ""),
			Exchange: getEnv("RABBITMQ_EXCHANGE", "properties"),
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     strings.ToLower(getEnv("LOG_FORMAT", "json")),
			TimeZone:   getEnv("LOG_TIMEZONE", "UTC"),
			FluentHost: getEnv("FLUENT_HOST", ""),
			FluentPort: getEnvInt("FLUENT_PORT", 24224),
			FluentTag:  getEnv("FLUENT_TAG", "realestateapi"),
		},
	}
}

// Validate rejects settings the application cannot start with.
func (c *AppConfig) Validate() error {
	switch c.StoreDriver {
	case StoreMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" {
			return fmt.Errorf("invalid mongo config: uri and database are required")
		}
	case StorePostgres:
	default:
		return fmt.Errorf("unsupported store driver %q (want %s or %s)", c.StoreDriver, StoreMongo, StorePostgres)
	}

	switch c.Log.Format {
	case "json", "text", "tint":
	default:
		return fmt.Errorf("unsupported log format %q", c.Log.Format)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
