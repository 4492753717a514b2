package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/sistem-gaji/internal/domain/employee"
	"github.com/cmlabs-hris/sistem-gaji/internal/pkg/validator"
	"github.com/joho/godotenv"
)

const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
)

// defaultTreasurerPassword only applies outside production.
const defaultTreasurerPassword = "12345"

var drivers = []string{DriverFile, DriverPostgres, DriverSQLite, DriverMySQL}

type Config struct {
	App       AppConfig
	Store     StoreConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Auth      AuthConfig
	Telegram  TelegramConfig
	RatesFile string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	CORSOrigins []string
}

type StoreConfig struct {
	Driver string
	// Path is the directory holding the data file and its snapshots.
	Path           string
	Filename       string
	SQLitePath     string
	MySQLDSN       string
	BackupInterval time.Duration
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
	Secret           string
	AccessExpiration string
}

type AuthConfig struct {
	TreasurerEmail        string
	TreasurerPasswordHash string
	// TreasurerPassword is hashed at boot when no hash is configured.
	TreasurerPassword string
	AllowPlaintext    bool
	BcryptCost        int
	RenamePolicy      employee.RenamePolicy
}

type TelegramConfig struct {
	Token       string
	PollTimeout time.Duration
}

// Load reads the environment, optionally seeded from a .env file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	config := &Config{}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}
	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: getEnvSlice("CORS_ORIGINS"),
	}

	backupInterval, err := time.ParseDuration(getEnv("BACKUP_INTERVAL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid BACKUP_INTERVAL: %w", err)
	}
	storePath := getEnv("STORE_PATH", "data")
	config.Store = StoreConfig{
		Driver:         strings.ToLower(getEnv("STORE_DRIVER", DriverFile)),
		Path:           storePath,
		Filename:       getEnv("STORE_FILE", "databaseghe1.json"),
		SQLitePath:     getEnv("SQLITE_PATH", storePath+"/sistem-gaji.db"),
		MySQLDSN:       getEnv("MYSQL_DSN", ""),
		BackupInterval: backupInterval,
	}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "sistem_gaji"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "8h"),
	}

	bcryptCost, err := strconv.Atoi(getEnv("BCRYPT_COST", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}
	allowPlaintext, err := strconv.ParseBool(getEnv("AUTH_ALLOW_PLAINTEXT", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_ALLOW_PLAINTEXT: %w", err)
	}
	renamePolicy, err := employee.ParseRenamePolicy(getEnv("RENAME_POLICY", ""))
	if err != nil {
		return nil, fmt.Errorf("invalid RENAME_POLICY: %w", err)
	}
	treasurerHash := getEnv("TREASURER_PASSWORD_HASH", "")
	treasurerPassword := getEnv("TREASURER_PASSWORD", "")
	if treasurerHash == "" && treasurerPassword == "" && config.App.Env != "production" {
		treasurerPassword = defaultTreasurerPassword
	}
	config.Auth = AuthConfig{
		TreasurerEmail:        getEnv("TREASURER_EMAIL", "bendahara@email.com"),
		TreasurerPasswordHash: treasurerHash,
		TreasurerPassword:     treasurerPassword,
		AllowPlaintext:        allowPlaintext,
		BcryptCost:            bcryptCost,
		RenamePolicy:          renamePolicy,
	}

	pollTimeout, err := time.ParseDuration(getEnv("TELEGRAM_POLL_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid TELEGRAM_POLL_TIMEOUT: %w", err)
	}
	config.Telegram = TelegramConfig{
		Token:       getEnv("TELEGRAM_TOKEN", ""),
		PollTimeout: pollTimeout,
	}

	config.RatesFile = getEnv("RATES_FILE", "")

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if !validator.IsInSlice(c.Store.Driver, drivers) {
		return fmt.Errorf("STORE_DRIVER must be one of %s", strings.Join(drivers, ", "))
	}
	switch c.Store.Driver {
	case DriverPostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	case DriverMySQL:
		if c.Store.MySQLDSN == "" {
			return fmt.Errorf("MYSQL_DSN is required")
		}
	}
	if c.Store.BackupInterval < 0 {
		return fmt.Errorf("BACKUP_INTERVAL must not be negative")
	}
	if !validator.IsValidEmail(c.Auth.TreasurerEmail) {
		return fmt.Errorf("TREASURER_EMAIL must be a valid email address")
	}
	if c.Auth.TreasurerPasswordHash == "" && c.Auth.TreasurerPassword == "" {
		return fmt.Errorf("TREASURER_PASSWORD_HASH or TREASURER_PASSWORD is required")
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

// SlogLevel parses LOG_LEVEL, falling back to info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.App.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
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
	var result []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}
