package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	DB       DBConfig
	Practice PracticeConfig
	JWT      JWTConfig
	S3       S3Config
	Email    EmailConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// PracticeConfig holds the receiving practice's settings.
type PracticeConfig struct {
	Name string `mapstructure:"name"`

	// Currency is the currency code every invoice amount must carry.
	Currency string `mapstructure:"currency"`

	// ContactEmail receives invoice rejection notifications.
	ContactEmail string `mapstructure:"contact_email"`
}

// JWTConfig holds JWT signing and expiry settings for supplier tokens.
type JWTConfig struct {
	Secret      string        `mapstructure:"secret"`
	TokenExpiry time.Duration `mapstructure:"token_expiry"`
	Issuer      string        `mapstructure:"issuer"`
}

// S3Config holds the invoice archive storage settings.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// EmailConfig holds notification delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the ESCI_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ESCI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "escibridge")
	v.SetDefault("db.password", "escibridge_secret")
	v.SetDefault("db.name", "escibridge_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Practice defaults
	v.SetDefault("practice.name", "Main Practice")
	v.SetDefault("practice.currency", "AUD")
	v.SetDefault("practice.contact_email", "")

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.token_expiry", "1h")
	v.SetDefault("jwt.issuer", "escibridge")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "escibridge-invoices")
	v.SetDefault("s3.endpoint", "")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@example.com")
	v.SetDefault("email.from_name", "ESCI Bridge")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":            "ESCI_SERVER_PORT",
		"server.read_timeout":    "ESCI_SERVER_READ_TIMEOUT",
		"server.write_timeout":   "ESCI_SERVER_WRITE_TIMEOUT",
		"server.environment":     "ESCI_SERVER_ENVIRONMENT",
		"db.host":                "ESCI_DB_HOST",
		"db.port":                "ESCI_DB_PORT",
		"db.user":                "ESCI_DB_USER",
		"db.password":            "ESCI_DB_PASSWORD",
		"db.name":                "ESCI_DB_NAME",
		"db.sslmode":             "ESCI_DB_SSLMODE",
		"db.max_open":            "ESCI_DB_MAX_OPEN",
		"db.max_idle":            "ESCI_DB_MAX_IDLE",
		"practice.name":          "ESCI_PRACTICE_NAME",
		"practice.currency":      "ESCI_PRACTICE_CURRENCY",
		"practice.contact_email": "ESCI_PRACTICE_CONTACT_EMAIL",
		"jwt.secret":             "ESCI_JWT_SECRET",
		"jwt.token_expiry":       "ESCI_JWT_TOKEN_EXPIRY",
		"jwt.issuer":             "ESCI_JWT_ISSUER",
		"s3.region":              "ESCI_S3_REGION",
		"s3.bucket":              "ESCI_S3_BUCKET",
		"s3.endpoint":            "ESCI_S3_ENDPOINT",
		"s3.access_key":          "ESCI_S3_ACCESS_KEY",
		"s3.secret_key":          "ESCI_S3_SECRET_KEY",
		"email.provider":         "ESCI_EMAIL_PROVIDER",
		"email.region":           "ESCI_EMAIL_REGION",
		"email.from_address":     "ESCI_EMAIL_FROM_ADDRESS",
		"email.from_name":        "ESCI_EMAIL_FROM_NAME",
		"log.level":              "ESCI_LOG_LEVEL",
		"log.format":             "ESCI_LOG_FORMAT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if ESCI_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("ESCI_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Practice = PracticeConfig{
		Name:         v.GetString("practice.name"),
		Currency:     v.GetString("practice.currency"),
		ContactEmail: v.GetString("practice.contact_email"),
	}
	cfg.JWT = JWTConfig{
		Secret:      v.GetString("jwt.secret"),
		TokenExpiry: v.GetDuration("jwt.token_expiry"),
		Issuer:      v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Bucket:    v.GetString("s3.bucket"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	return cfg, nil
}
