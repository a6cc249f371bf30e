package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database     DatabaseConfig
	JWT          JWTConfig
	App          AppConfig
	Storage      StorageConfig
	OCR          OCRConfig
	OAuth2Google OAuth2GoogleConfig
	Payslip      PayslipConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// StorageConfig holds document storage configuration.
// Type selects between "local" and "s3".
type StorageConfig struct {
	Type     string
	BasePath string
	BaseURL  string

	S3Region    string
	S3Bucket    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
}

// OCRConfig holds the external text-recognition engine configuration.
// An empty Endpoint disables recognition; uploads then always produce an
// all-zero draft that requires manual verification.
type OCRConfig struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

type OAuth2GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

// PayslipConfig bounds the range of periods a payslip may be recorded for.
type PayslipConfig struct {
	EarliestPeriod time.Time
}

func Load() (*Config, error) {
	// A missing .env is fine; configuration may come from the environment.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "payfolio"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Storage configuration
	config.Storage = StorageConfig{
		Type:        getEnv("STORAGE_TYPE", "local"),
		BasePath:    getEnv("STORAGE_BASE_PATH", "./uploads"),
		BaseURL:     getEnv("STORAGE_BASE_URL", "http://localhost:8080/uploads"),
		S3Region:    getEnv("S3_REGION", "eu-west-2"),
		S3Bucket:    getEnv("S3_BUCKET", ""),
		S3Endpoint:  getEnv("S3_ENDPOINT", ""),
		S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey: getEnv("S3_SECRET_KEY", ""),
	}

	// OCR configuration
	ocrTimeout, err := time.ParseDuration(getEnv("OCR_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid OCR_TIMEOUT: %w", err)
	}
	config.OCR = OCRConfig{
		Endpoint: getEnv("OCR_ENDPOINT", ""),
		APIKey:   getEnv("OCR_API_KEY", ""),
		Timeout:  ocrTimeout,
	}

	// OAuth2 Google configuration
	config.OAuth2Google = OAuth2GoogleConfig{
		ClientID:     getEnv("CLIENT_ID", ""),
		ClientSecret: getEnv("CLIENT_SECRET", ""),
		RedirectURL:  getEnv("REDIRECT_URL", ""),
		Scopes:       getEnvSlice("SCOPES"),
	}

	// Payslip configuration
	earliest, err := time.Parse("2006-01", getEnv("PAYSLIP_EARLIEST_PERIOD", "2015-01"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYSLIP_EARLIEST_PERIOD: %w", err)
	}
	config.Payslip = PayslipConfig{EarliestPeriod: earliest}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Storage.Type != "local" && c.Storage.Type != "s3" {
		return fmt.Errorf("STORAGE_TYPE must be 'local' or 's3'")
	}
	if c.Storage.Type == "s3" && c.Storage.S3Bucket == "" {
		return fmt.Errorf("S3_BUCKET is required when STORAGE_TYPE is 's3'")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	return strings.Split(value, ",")
}
