package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Provider struct {
		Source       string `yaml:"source"` // yahoo, alpaca, mock
		Proxy        string `yaml:"proxy"`
		AlpacaKeyID  string `yaml:"alpaca_key_id"`
		AlpacaSecret string `yaml:"alpaca_secret"`
	} `yaml:"provider"`
	Screener struct {
		Days            int      `yaml:"days"`
		Limit           int      `yaml:"limit"`
		Workers         int      `yaml:"workers"`
		FetchTimeoutSec int      `yaml:"fetch_timeout_seconds"`
		Tickers         []string `yaml:"tickers"`
	} `yaml:"screener"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults.
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
	if v := os.Getenv("RADAR_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("RADAR_PROVIDER"); v != "" {
		cfg.Provider.Source = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Provider.Proxy = v
	}
	if v := os.Getenv("ALPACA_API_KEY"); v != "" {
		cfg.Provider.AlpacaKeyID = v
	}
	if v := os.Getenv("ALPACA_SECRET_KEY"); v != "" {
		cfg.Provider.AlpacaSecret = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("RADAR_DAILY_CRON"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("RADAR_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Screener.Workers = n
		}
	}
	if v := os.Getenv("RADAR_TICKERS"); v != "" {
		cfg.Screener.Tickers = SplitTickers(v)
	}

	// Defaults
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8000"
	}
	if cfg.Provider.Source == "" {
		cfg.Provider.Source = "yahoo"
	}
	if cfg.Screener.Days == 0 {
		cfg.Screener.Days = 365
	}
	if cfg.Screener.Limit == 0 {
		cfg.Screener.Limit = 15
	}
	if cfg.Screener.Workers == 0 {
		cfg.Screener.Workers = 4
	}
	if cfg.Screener.FetchTimeoutSec == 0 {
		cfg.Screener.FetchTimeoutSec = 30
	}

	return cfg, nil
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	switch c.Provider.Source {
	case "yahoo", "mock":
	case "alpaca":
		if c.Provider.AlpacaKeyID == "" || c.Provider.AlpacaSecret == "" {
			return fmt.Errorf("provider.source alpaca requires alpaca_key_id and alpaca_secret")
		}
	default:
		return fmt.Errorf("unknown provider.source %q", c.Provider.Source)
	}
	if c.Screener.Days < 60 {
		return fmt.Errorf("screener.days must be at least 60, got %d", c.Screener.Days)
	}
	if c.Screener.Limit < 1 {
		return fmt.Errorf("screener.limit must be at least 1, got %d", c.Screener.Limit)
	}
	if c.Screener.Workers < 1 {
		return fmt.Errorf("screener.workers must be at least 1, got %d", c.Screener.Workers)
	}
	if c.Schedule.DailyCron != "" && (c.Telegram.BotToken == "" || c.Telegram.ChatID == "") {
		return fmt.Errorf("schedule.daily_cron requires telegram.bot_token and telegram.chat_id")
	}
	return nil
}

// SplitTickers parses a comma-separated ticker list, trimming and
// upper-casing each entry.
func SplitTickers(s string) []string {
	parts := strings.Split(s, ",")
	tickers := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.ToUpper(strings.TrimSpace(p))
		if t != "" {
			tickers = append(tickers, t)
		}
	}
	return tickers
}
