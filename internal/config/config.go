package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Symbols struct {
		Crypto []string `yaml:"crypto"`
		Equity []string `yaml:"equity"`
	} `yaml:"symbols"`
	Snapshot struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"snapshot"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		ScanCron    string `yaml:"scan_cron"`
		SummaryCron string `yaml:"summary_cron"`
	} `yaml:"schedule"`
	Planner struct {
		HorizonDays int `yaml:"horizon_days"`
		HistoryBars int `yaml:"history_bars"`
	} `yaml:"planner"`
	Stream struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"stream"`
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("SNAPSHOT_BASE_URL"); v != "" {
		cfg.Snapshot.BaseURL = v
	}
	if v := os.Getenv("SNAPSHOT_API_KEY"); v != "" {
		cfg.Snapshot.APIKey = v
	}
	if v := os.Getenv("SCAN_CRON"); v != "" {
		cfg.Schedule.ScanCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("PLAN_HORIZON_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil {
			cfg.Planner.HorizonDays = days
		}
	}
	if v := os.Getenv("STREAM_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Stream.Enabled = enabled
		}
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if len(cfg.Symbols.Crypto) == 0 && len(cfg.Symbols.Equity) == 0 {
		cfg.Symbols.Crypto = []string{"BTCUSDT", "ETHUSDT"}
	}
	if cfg.Schedule.ScanCron == "" {
		cfg.Schedule.ScanCron = "0 */15 * * * *"
	}
	if cfg.Schedule.SummaryCron == "" {
		cfg.Schedule.SummaryCron = "0 0 21 * * *"
	}
	if cfg.Planner.HorizonDays == 0 {
		cfg.Planner.HorizonDays = 14
	}
	if cfg.Planner.HistoryBars == 0 {
		cfg.Planner.HistoryBars = 90
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/marketscanner.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if len(c.Symbols.Crypto) == 0 && len(c.Symbols.Equity) == 0 {
		return fmt.Errorf("at least one symbol is required")
	}
	if len(c.Symbols.Equity) > 0 && c.Snapshot.BaseURL == "" {
		return fmt.Errorf("snapshot.base_url is required when equity symbols are configured")
	}
	if c.Planner.HorizonDays <= 0 {
		return fmt.Errorf("planner.horizon_days must be positive")
	}
	if c.Planner.HistoryBars < 35 {
		return fmt.Errorf("planner.history_bars must be at least 35 to compute MACD")
	}
	return nil
}
