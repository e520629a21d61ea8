package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
}

type DatabaseConfig struct {
	Driver         string
	Host           string
	Port           int
	User           string
	Password       string
	Name           string
	SSLMode        string
	MaxConns       int32
	MinConns       int32
	MigrateOnStart bool
	// SeedFile is a JSON fixture loaded into the memory driver at startup
	SeedFile string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	Timezone       string
	AllowedOrigins []string
}

// AttendanceConfig holds the attendance policy knobs
type AttendanceConfig struct {
	LateCutoff   attendance.Cutoff
	HistoryLimit int
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	} else if err != nil {
		slog.Debug("no .env file found, using process environment")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := strconv.ParseInt(getEnv("DB_MAX_CONNS", "25"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.ParseInt(getEnv("DB_MIN_CONNS", "5"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}
	migrateOnStart, err := strconv.ParseBool(getEnv("MIGRATE_ON_START", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid MIGRATE_ON_START: %w", err)
	}

	config.Database = DatabaseConfig{
		Driver:         strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		Host:           getEnv("DB_HOST", "localhost"),
		Port:           dbPort,
		User:           getEnv("DB_USER", "postgres"),
		Password:       getEnv("DB_PASSWORD", ""),
		Name:           getEnv("DB_NAME", "hris_attendance"),
		SSLMode:        getEnv("DB_SSL_MODE", "disable"),
		MaxConns:       int32(maxConns),
		MinConns:       int32(minConns),
		MigrateOnStart: migrateOnStart,
		SeedFile:       getEnv("MEMORY_SEED_FILE", ""),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Timezone:       getEnv("APP_TIMEZONE", "UTC"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Attendance configuration
	cutoff, err := attendance.ParseCutoff(getEnv("ATTENDANCE_LATE_CUTOFF", attendance.DefaultCutoff.String()))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_LATE_CUTOFF: %w", err)
	}
	historyLimit, err := strconv.Atoi(getEnv("ATTENDANCE_HISTORY_LIMIT", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_HISTORY_LIMIT: %w", err)
	}

	config.Attendance = AttendanceConfig{
		LateCutoff:   cutoff,
		HistoryLimit: historyLimit,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("DB_DRIVER must be %q or %q", DriverPostgres, DriverMemory)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	if c.Attendance.HistoryLimit <= 0 {
		return fmt.Errorf("ATTENDANCE_HISTORY_LIMIT must be positive")
	}
	return nil
}

// Location resolves the timezone that defines the attendance calendar day.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.App.Timezone)
}

// LogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.App.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
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

func getEnvSlice(env string, fallback []string) []string {
	value := getEnv(env, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
