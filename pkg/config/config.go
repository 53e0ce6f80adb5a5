package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	CORS      CORSConfig
	Log       LogConfig
	Dashboard DashboardConfig
	Relay     RelayConfig
	Report    ReportConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	Params       string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// AuthConfig governs opaque session token issuance.
type AuthConfig struct {
	TokenExpiry time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// DashboardConfig governs caching of aggregate dashboard payloads.
type DashboardConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
}

// RelayConfig configures the listener auto-reply generation pipeline.
type RelayConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	MaxTokens      int
	Temperature    float64
	RequestTimeout time.Duration
	Workers        int
	MaxRetries     int
}

// ReportConfig governs the report archive and signed download links.
type ReportConfig struct {
	ArchiveEnabled bool
	ArchiveDir     string
	ArchiveTTL     time.Duration
	LinkSecret     string
	LinkTTL        time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		Params:       v.GetString("DB_PARAMS"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Auth = AuthConfig{
		TokenExpiry: parseDuration(v.GetString("AUTH_TOKEN_EXPIRY"), 24*time.Hour),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Dashboard = DashboardConfig{
		CacheEnabled: v.GetBool("DASHBOARD_CACHE_ENABLED"),
		CacheTTL:     parseDuration(v.GetString("DASHBOARD_CACHE_TTL"), 5*time.Minute),
	}

	cfg.Relay = RelayConfig{
		APIKey:         v.GetString("RELAY_API_KEY"),
		BaseURL:        v.GetString("RELAY_BASE_URL"),
		Model:          v.GetString("RELAY_MODEL"),
		MaxTokens:      v.GetInt("RELAY_MAX_TOKENS"),
		Temperature:    v.GetFloat64("RELAY_TEMPERATURE"),
		RequestTimeout: parseDuration(v.GetString("RELAY_REQUEST_TIMEOUT"), 15*time.Second),
		Workers:        v.GetInt("RELAY_WORKERS"),
		MaxRetries:     v.GetInt("RELAY_MAX_RETRIES"),
	}

	cfg.Report = ReportConfig{
		ArchiveEnabled: v.GetBool("REPORT_ARCHIVE_ENABLED"),
		ArchiveDir:     v.GetString("REPORT_ARCHIVE_DIR"),
		ArchiveTTL:     parseDuration(v.GetString("REPORT_ARCHIVE_TTL"), 30*24*time.Hour),
		LinkSecret:     v.GetString("REPORT_LINK_SECRET"),
		LinkTTL:        parseDuration(v.GetString("REPORT_LINK_TTL"), 24*time.Hour),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 3306)
	v.SetDefault("DB_USER", "root")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "dropoutstud")
	v.SetDefault("DB_PARAMS", "parseTime=true&charset=utf8mb4")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("AUTH_TOKEN_EXPIRY", "24h")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("DASHBOARD_CACHE_ENABLED", false)
	v.SetDefault("DASHBOARD_CACHE_TTL", "5m")

	v.SetDefault("RELAY_API_KEY", "")
	v.SetDefault("RELAY_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/openai/")
	v.SetDefault("RELAY_MODEL", "gemini-1.5-flash")
	v.SetDefault("RELAY_MAX_TOKENS", 512)
	v.SetDefault("RELAY_TEMPERATURE", 0.7)
	v.SetDefault("RELAY_REQUEST_TIMEOUT", "15s")
	v.SetDefault("RELAY_WORKERS", 1)
	v.SetDefault("RELAY_MAX_RETRIES", 3)

	v.SetDefault("REPORT_ARCHIVE_ENABLED", false)
	v.SetDefault("REPORT_ARCHIVE_DIR", "./reports")
	v.SetDefault("REPORT_ARCHIVE_TTL", "720h")
	v.SetDefault("REPORT_LINK_SECRET", "")
	v.SetDefault("REPORT_LINK_TTL", "24h")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
