package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// UpstreamConfig holds settings for the platform REST API the engines talk to.
type UpstreamConfig struct {
	BaseURL        string `yaml:"base_url"`
	Token          string `yaml:"token"`
	TimeoutSec     int    `yaml:"timeout_sec"`
	MaxErrorBodyKB int    `yaml:"max_error_body_kb"`
}

// Timeout returns the request timeout applied by the transport.
func (u UpstreamConfig) Timeout() time.Duration {
	return time.Duration(u.TimeoutSec) * time.Second
}

// DatabaseConfig holds PostgreSQL settings for the notice journal.
// The journal is optional; an empty Host disables it.
type DatabaseConfig struct {
	Host               string `yaml:"host"`
	Port               string `yaml:"port"`
	User               string `yaml:"user"`
	Password           string `yaml:"password"`
	Name               string `yaml:"name"`
	SSLMode            string `yaml:"sslmode"`
	MaxOpenConns       int    `yaml:"max_open_conns"`
	MaxIdleConns       int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeSec int    `yaml:"conn_max_lifetime_sec"`
}

// Enabled reports whether a journal database is configured.
func (d DatabaseConfig) Enabled() bool {
	return d.Host != ""
}

// MinIOConfig holds object storage settings for staged upload files.
// An empty Endpoint disables staged files.
type MinIOConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// Enabled reports whether staged files are available.
func (m MinIOConfig) Enabled() bool {
	return m.Endpoint != ""
}

// ConsoleConfig holds paging and notice defaults of the collaboration core.
type ConsoleConfig struct {
	ParticipationPageSize int    `yaml:"participation_page_size"`
	NoticeFeedSize        int    `yaml:"notice_feed_size"`
	LogLevel              string `yaml:"log_level"`
	Timezone              string `yaml:"timezone"`
}

// Location resolves Timezone, falling back to UTC.
func (c ConsoleConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil || c.Timezone == "" {
		return time.UTC
	}
	return loc
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from an optional YAML file, then environment variables.
type AppConfig struct {
	Port     string         `yaml:"port"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Database DatabaseConfig `yaml:"database"`
	MinIO    MinIOConfig    `yaml:"minio"`
	Console  ConsoleConfig  `yaml:"console"`
}

// Load reads configuration. Defaults are overlaid by the YAML file named in
// CONSOLE_CONFIG_PATH (if any) and finally by environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		Port: "8080",
		Upstream: UpstreamConfig{
			BaseURL:        "http://localhost:3000/api",
			TimeoutSec:     30,
			MaxErrorBodyKB: 4,
		},
		Database: DatabaseConfig{
			Port:               "5432",
			SSLMode:            "disable",
			MaxOpenConns:       10,
			MaxIdleConns:       5,
			ConnMaxLifetimeSec: 300,
		},
		Console: ConsoleConfig{
			ParticipationPageSize: 20,
			NoticeFeedSize:        100,
			LogLevel:              "info",
			Timezone:              "UTC",
		},
	}

	if path := os.Getenv("CONSOLE_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, err
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)

	cfg.Upstream.BaseURL = getEnv("UPSTREAM_BASE_URL", cfg.Upstream.BaseURL)
	cfg.Upstream.Token = getEnv("UPSTREAM_TOKEN", cfg.Upstream.Token)
	cfg.Upstream.TimeoutSec = getEnvInt("UPSTREAM_TIMEOUT_SEC", cfg.Upstream.TimeoutSec)
	cfg.Upstream.MaxErrorBodyKB = getEnvInt("UPSTREAM_MAX_ERROR_BODY_KB", cfg.Upstream.MaxErrorBodyKB)

	cfg.Database.Host = getEnv("DB_HOST", cfg.Database.Host)
	cfg.Database.Port = getEnv("DB_PORT", cfg.Database.Port)
	cfg.Database.User = getEnv("DB_USER", cfg.Database.User)
	cfg.Database.Password = getEnv("DB_PASSWORD", cfg.Database.Password)
	cfg.Database.Name = getEnv("DB_NAME", cfg.Database.Name)
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", cfg.Database.SSLMode)
	cfg.Database.MaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", cfg.Database.MaxOpenConns)
	cfg.Database.MaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", cfg.Database.MaxIdleConns)
	cfg.Database.ConnMaxLifetimeSec = getEnvInt("DB_CONN_MAX_LIFETIME_SEC", cfg.Database.ConnMaxLifetimeSec)

	cfg.MinIO.Endpoint = getEnv("MINIO_ENDPOINT", cfg.MinIO.Endpoint)
	cfg.MinIO.AccessKey = getEnv("MINIO_ACCESS_KEY", cfg.MinIO.AccessKey)
	cfg.MinIO.SecretKey = getEnv("MINIO_SECRET_KEY", cfg.MinIO.SecretKey)
	cfg.MinIO.Bucket = getEnv("MINIO_BUCKET", cfg.MinIO.Bucket)
	cfg.MinIO.UseSSL = getEnvBool("MINIO_USE_SSL", cfg.MinIO.UseSSL)

	cfg.Console.ParticipationPageSize = getEnvInt("PARTICIPATION_PAGE_SIZE", cfg.Console.ParticipationPageSize)
	cfg.Console.NoticeFeedSize = getEnvInt("NOTICE_FEED_SIZE", cfg.Console.NoticeFeedSize)
	cfg.Console.LogLevel = getEnv("LOG_LEVEL", cfg.Console.LogLevel)
	cfg.Console.Timezone = getEnv("APP_TIMEZONE", cfg.Console.Timezone)

	if cfg.Console.ParticipationPageSize <= 0 {
		return nil, fmt.Errorf("invalid PARTICIPATION_PAGE_SIZE: %d", cfg.Console.ParticipationPageSize)
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *AppConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
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
