// Package config holds runtime configuration for the tracker.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Storage backend names accepted by Config.Storage.
const (
	StorageMemory = "memory"
	StorageFile   = "file"
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
	StorageS3     = "s3"
)

// Config holds tracker configuration.
type Config struct {
	Storage     string `yaml:"storage"`
	DataDir     string `yaml:"data_dir"`
	SQLitePath  string `yaml:"sqlite_path"`
	RedisAddr   string `yaml:"redis_addr"`
	RedisDB     int    `yaml:"redis_db"`
	RedisPass   string `yaml:"redis_password"`
	S3Bucket    string `yaml:"s3_bucket"`
	S3Region    string `yaml:"s3_region"`
	S3Endpoint  string `yaml:"s3_endpoint"`
	S3Prefix    string `yaml:"s3_prefix"`
	HorizonDays int    `yaml:"horizon_days"`
	OrgSuffix   string `yaml:"org_suffix"`
	LogLevel    string `yaml:"log_level"`
}

// Load loads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		Storage:    os.Getenv("PACTWATCH_STORAGE"),
		DataDir:    os.Getenv("PACTWATCH_DATA_DIR"),
		SQLitePath: os.Getenv("PACTWATCH_SQLITE_PATH"),
		RedisAddr:  os.Getenv("PACTWATCH_REDIS_ADDR"),
		RedisPass:  os.Getenv("PACTWATCH_REDIS_PASSWORD"),
		S3Bucket:   os.Getenv("PACTWATCH_S3_BUCKET"),
		S3Region:   os.Getenv("PACTWATCH_S3_REGION"),
		S3Endpoint: os.Getenv("PACTWATCH_S3_ENDPOINT"),
		S3Prefix:   os.Getenv("PACTWATCH_S3_PREFIX"),
		OrgSuffix:  os.Getenv("PACTWATCH_ORG_SUFFIX"),
		LogLevel:   os.Getenv("LOG_LEVEL"),
	}
	if v := os.Getenv("PACTWATCH_REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RedisDB = n
		}
	}
	if v := os.Getenv("PACTWATCH_HORIZON_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HorizonDays = n
		}
	}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Storage == "" {
		c.Storage = StorageFile
	}
	if c.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		c.DataDir = home + string(os.PathSeparator) + ".pactwatch"
	}
	if c.SQLitePath == "" {
		c.SQLitePath = c.DataDir + string(os.PathSeparator) + "pactwatch.db"
	}
	if c.RedisAddr == "" {
		c.RedisAddr = "localhost:6379"
	}
	if c.S3Region == "" {
		c.S3Region = "us-east-1"
	}
	if c.HorizonDays <= 0 {
		c.HorizonDays = 30
	}
	if c.LogLevel == "" {
		c.LogLevel = "INFO"
	}
}

// SlogLevel maps the configured level name to a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
