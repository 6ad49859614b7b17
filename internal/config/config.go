package config

import (
	"os"
	"strconv"
	"time"
)

// ServiceConfig holds the address of the remote review workflow service.
type ServiceConfig struct {
	BaseURL string
	// Timeout bounds each outbound call. Zero means no client-side timeout.
	Timeout time.Duration
}

// JournalConfig holds PostgreSQL settings for the optional activity journal.
type JournalConfig struct {
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

// Enabled reports whether a journal database has been configured.
func (c JournalConfig) Enabled() bool {
	return c.Host != ""
}

// ArchiveConfig holds S3-compatible storage settings for the optional PDF archive.
type ArchiveConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Enabled reports whether an archive endpoint has been configured.
func (c ArchiveConfig) Enabled() bool {
	return c.Endpoint != ""
}

// AppConfig is everything the console reads from its environment.
type AppConfig struct {
	// AppHost is the public host:port shown in the API docs until a request supplies one.
	AppHost  string
	Port     string
	LogLevel string
	Service  ServiceConfig
	Journal  JournalConfig
	Archive  ArchiveConfig
}

// Load reads configuration from environment variables.
// A .env file is picked up by importing _ "github.com/joho/godotenv/autoload";
// real environment variables take precedence over it.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:  getEnv("APP_HOST", "localhost:8080"),
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Service: ServiceConfig{
			BaseURL: getEnv("REVIEW_SERVICE_URL", "http://localhost:5000"),
			Timeout: getEnvSeconds("REVIEW_SERVICE_TIMEOUT_SEC", 0),
		},
		Journal: JournalConfig{
			Host:               getEnv("JOURNAL_DB_HOST", ""),
			Port:               getEnv("JOURNAL_DB_PORT", "5432"),
			User:               getEnv("JOURNAL_DB_USER", ""),
			Password:           getEnv("JOURNAL_DB_PASSWORD", ""),
			Name:               getEnv("JOURNAL_DB_NAME", "reviewdesk"),
			SSLMode:            getEnv("JOURNAL_DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("JOURNAL_DB_MAX_OPEN_CONNS", 5),
			MaxIdleConns:       getEnvInt("JOURNAL_DB_MAX_IDLE_CONNS", 2),
			ConnMaxLifetimeSec: getEnvInt("JOURNAL_DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		Archive: ArchiveConfig{
			Endpoint:  getEnv("ARCHIVE_ENDPOINT", ""),
			AccessKey: getEnv("ARCHIVE_ACCESS_KEY", ""),
			SecretKey: getEnv("ARCHIVE_SECRET_KEY", ""),
			Bucket:    getEnv("ARCHIVE_BUCKET", "reviewdesk-artifacts"),
			UseSSL:    getEnvBool("ARCHIVE_USE_SSL", false),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

// getEnvSeconds reads a whole number of seconds. Negative values fall back to def.
func getEnvSeconds(key string, def time.Duration) time.Duration {
	n := getEnvInt(key, -1)
	if n < 0 {
		return def
	}
	return time.Duration(n) * time.Second
}
