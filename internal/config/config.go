package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port            string `yaml:"port" env:"SERVER_PORT"`
		Mode            string `yaml:"mode" env:"SERVER_MODE"`
		ReadTimeout     string `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
		WriteTimeout    string `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
		ShutdownTimeout string `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	JWT struct {
		Secret     string `yaml:"secret" env:"JWT_SECRET"`
		Expiration string `yaml:"expiration" env:"JWT_EXPIRATION"`
		Issuer     string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	AI struct {
		APIKey  string `yaml:"api_key" env:"GEMINI_API_KEY"`
		Model   string `yaml:"model" env:"GEMINI_MODEL"`
		Timeout string `yaml:"timeout" env:"AI_TIMEOUT"`
	} `yaml:"ai"`

	Email struct {
		Provider       string `yaml:"provider" env:"EMAIL_PROVIDER"`
		Host           string `yaml:"host" env:"EMAIL_HOST"`
		Port           int    `yaml:"port" env:"EMAIL_PORT"`
		Username       string `yaml:"username" env:"EMAIL_USER"`
		Password       string `yaml:"password" env:"EMAIL_PASS"`
		UseTLS         bool   `yaml:"use_tls" env:"EMAIL_USE_TLS"`
		FromName       string `yaml:"from_name" env:"EMAIL_FROM_NAME"`
		FromEmail      string `yaml:"from_email" env:"EMAIL_FROM"`
		SendGridAPIKey string `yaml:"sendgrid_api_key" env:"SENDGRID_API_KEY"`
		Timeout        string `yaml:"timeout" env:"EMAIL_TIMEOUT"`
	} `yaml:"email"`

	Scheduler struct {
		Enabled    bool   `yaml:"enabled" env:"SCHEDULER_ENABLED"`
		Spec       string `yaml:"spec" env:"SCHEDULER_SPEC"`
		Timezone   string `yaml:"timezone" env:"SCHEDULER_TIMEZONE"`
		WindowDays int    `yaml:"window_days" env:"SCHEDULER_WINDOW_DAYS"`
		LockTTL    string `yaml:"lock_ttl" env:"SCHEDULER_LOCK_TTL"`
		RunOnStart bool   `yaml:"run_on_start" env:"SCHEDULER_RUN_ON_START"`
	} `yaml:"scheduler"`

	Storage struct {
		Driver    string `yaml:"driver" env:"STORAGE_DRIVER"`
		LocalPath string `yaml:"local_path" env:"STORAGE_LOCAL_PATH"`
		Minio     struct {
			Endpoint  string `yaml:"endpoint" env:"MINIO_ENDPOINT"`
			AccessKey string `yaml:"access_key" env:"MINIO_ACCESS_KEY"`
			SecretKey string `yaml:"secret_key" env:"MINIO_SECRET_KEY"`
			Bucket    string `yaml:"bucket" env:"MINIO_BUCKET"`
			UseSSL    bool   `yaml:"use_ssl" env:"MINIO_USE_SSL"`
		} `yaml:"minio"`
	} `yaml:"storage"`

	Redis struct {
		Addr     string `yaml:"addr" env:"REDIS_ADDR"`
		Password string `yaml:"password" env:"REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"REDIS_DB"`
	} `yaml:"redis"`

	Cache struct {
		PrincipalTTL string `yaml:"principal_ttl" env:"CACHE_PRINCIPAL_TTL"`
	} `yaml:"cache"`

	Seed struct {
		Name     string `yaml:"name" env:"SEED_FACULTY_NAME"`
		Email    string `yaml:"email" env:"SEED_FACULTY_EMAIL"`
		Password string `yaml:"password" env:"SEED_FACULTY_PASSWORD"`
	} `yaml:"seed"`
}

// Email transport names
const (
	EmailProviderSMTP     = "smtp"
	EmailProviderSendGrid = "sendgrid"
	EmailProviderLog      = "log"
)

// Storage driver names
const (
	StorageDriverLocal = "local"
	StorageDriverMinio = "minio"
	StorageDriverNone  = "none"
)

// LoadConfig loads configuration from a file, a .env file and environment variables,
// in increasing order of precedence.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadDotEnv(); err != nil {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.ReadTimeout = "30s"
	config.Server.WriteTimeout = "120s"
	config.Server.ShutdownTimeout = "15s"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "syllabus_tracker"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 2
	config.Database.MaxOpenConns = 10
	config.Database.ConnMaxLifetime = "1h"

	config.JWT.Expiration = "720h"
	config.JWT.Issuer = "syllabus-tracker"

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.AI.Model = "gemini-2.5-flash"
	config.AI.Timeout = "90s"

	config.Email.Provider = EmailProviderLog
	config.Email.Port = 587
	config.Email.FromName = "AI Syllabus Tracker"
	config.Email.Timeout = "30s"

	config.Scheduler.Enabled = true
	config.Scheduler.Spec = "0 8 * * *"
	config.Scheduler.Timezone = "Asia/Kolkata"
	config.Scheduler.WindowDays = 3
	config.Scheduler.LockTTL = "30m"

	config.Storage.Driver = StorageDriverLocal
	config.Storage.LocalPath = "uploads"
	config.Storage.Minio.Bucket = "syllabi"

	config.Cache.PrincipalTTL = "1m"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return applyEnv(config, os.LookupEnv)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	durations := map[string]string{
		"server.read_timeout":        config.Server.ReadTimeout,
		"server.write_timeout":       config.Server.WriteTimeout,
		"server.shutdown_timeout":    config.Server.ShutdownTimeout,
		"database.conn_max_lifetime": config.Database.ConnMaxLifetime,
		"jwt.expiration":             config.JWT.Expiration,
		"ai.timeout":                 config.AI.Timeout,
		"email.timeout":              config.Email.Timeout,
		"scheduler.lock_ttl":         config.Scheduler.LockTTL,
		"cache.principal_ttl":        config.Cache.PrincipalTTL,
	}
	for key, value := range durations {
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		if d <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}

	switch strings.ToLower(config.Email.Provider) {
	case EmailProviderLog:
	case EmailProviderSMTP:
		if config.Email.Host == "" || config.Email.FromEmail == "" {
			return fmt.Errorf("smtp email provider requires host and from_email")
		}
	case EmailProviderSendGrid:
		if config.Email.SendGridAPIKey == "" || config.Email.FromEmail == "" {
			return fmt.Errorf("sendgrid email provider requires sendgrid_api_key and from_email")
		}
	default:
		return fmt.Errorf("unknown email provider %q", config.Email.Provider)
	}

	switch strings.ToLower(config.Storage.Driver) {
	case StorageDriverNone:
	case StorageDriverLocal:
		if config.Storage.LocalPath == "" {
			return fmt.Errorf("local storage requires local_path")
		}
	case StorageDriverMinio:
		if config.Storage.Minio.Endpoint == "" || config.Storage.Minio.Bucket == "" {
			return fmt.Errorf("minio storage requires endpoint and bucket")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", config.Storage.Driver)
	}

	if _, err := cron.ParseStandard(config.Scheduler.Spec); err != nil {
		return fmt.Errorf("invalid scheduler spec %q: %w", config.Scheduler.Spec, err)
	}
	if _, err := time.LoadLocation(config.Scheduler.Timezone); err != nil {
		return fmt.Errorf("invalid scheduler timezone: %w", err)
	}
	if config.Scheduler.WindowDays < 0 {
		return fmt.Errorf("scheduler window_days must not be negative")
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Mode, "production")
}

// SchedulerLocation returns the zone deadlines are evaluated in.
// The timezone is checked by validateConfig, so the error is unreachable after LoadConfig.
func (c *Config) SchedulerLocation() *time.Location {
	loc, err := time.LoadLocation(c.Scheduler.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
