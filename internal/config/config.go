// Package config loads orderbot settings from an optional YAML file,
// a .env file and the process environment, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	// ConfigPathEnv names the environment variable holding the YAML file path
	ConfigPathEnv = "ORDERBOT_CONFIG"
	// DefaultDBPath is the default location of the SQLite database
	DefaultDBPath = "~/.orderbot/restaurant.db"
)

// Config holds all runtime settings
type Config struct {
	Env      string `yaml:"env" env:"ORDERBOT_ENV" env-default:"local"`
	LogLevel string `yaml:"log_level" env:"ORDERBOT_LOG_LEVEL" env-default:"info"`

	// BotToken authenticates clients of the HTTP transport
	BotToken string `yaml:"bot_token" env:"BOT_TOKEN"`
	// OperatorID receives order notifications and may list orders
	OperatorID int64 `yaml:"operator_id" env:"ADMIN_ID"`

	DBPath   string `yaml:"db_path" env:"ORDERBOT_DB_PATH" env-default:"~/.orderbot/restaurant.db"`
	HTTPAddr string `yaml:"http_addr" env:"ORDERBOT_HTTP_ADDR"`

	MailboxCapacity int `yaml:"mailbox_capacity" env:"ORDERBOT_MAILBOX_CAPACITY" env-default:"100"`
	RecentOrders    int `yaml:"recent_orders" env:"ORDERBOT_RECENT_ORDERS" env-default:"10"`
}

// Load reads .env (if present), then the YAML file named by ORDERBOT_CONFIG
// (if set), then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	if path := os.Getenv(ConfigPathEnv); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings that have no usable default
func (c *Config) Validate() error {
	if c.HTTPAddr != "" && c.BotToken == "" {
		return errors.New("bot_token is required when http_addr is set")
	}
	if c.MailboxCapacity < 0 {
		return fmt.Errorf("mailbox_capacity must not be negative, got %d", c.MailboxCapacity)
	}
	if c.RecentOrders <= 0 {
		return fmt.Errorf("recent_orders must be positive, got %d", c.RecentOrders)
	}
	return nil
}

// ResolveDBPath expands a leading "~" and creates the parent directory.
// ":memory:" is returned unchanged.
func (c *Config) ResolveDBPath() (string, error) {
	path := c.DBPath
	if path == "" {
		path = DefaultDBPath
	}
	if path == ":memory:" {
		return path, nil
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create database directory: %w", err)
	}
	return path, nil
}
