package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"TickerDesk/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Tickers       map[string]string `yaml:"tickers"`
	DefaultTicker string            `yaml:"default_ticker"`

	News struct {
		URLTemplate   string        `yaml:"url_template"`
		BlockSelector string        `yaml:"block_selector"`
		LinkSelector  string        `yaml:"link_selector"`
		Limit         int           `yaml:"limit"`
		UserAgent     string        `yaml:"user_agent"`
		Timeout       time.Duration `yaml:"timeout"`
	} `yaml:"news"`

	Market struct {
		Suffix        string        `yaml:"suffix"`
		Interval      string        `yaml:"interval"`
		LookbackYears int           `yaml:"lookback_years"`
		Timeout       time.Duration `yaml:"timeout"`
	} `yaml:"market"`

	DataSource struct {
		Provider string `yaml:"provider"` // yahoo, rest or mock
		BaseURL  string `yaml:"base_url"`
		APIKey   string `yaml:"api_key"`
	} `yaml:"data_source"`

	Indicator struct {
		SMAWindow int `yaml:"sma_window"`
		RSIPeriod int `yaml:"rsi_period"`
	} `yaml:"indicator"`

	Chart model.ChartMetadata `yaml:"chart"`

	Cache struct {
		TTL time.Duration `yaml:"ttl"`
	} `yaml:"cache"`

	Schedule struct {
		SweepCron     string `yaml:"sweep_cron"`
		RetentionCron string `yaml:"retention_cron"`
		RetentionDays int    `yaml:"retention_days"`
	} `yaml:"schedule"`

	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`

	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`

	HTTP struct {
		Addr string `yaml:"addr"`
	} `yaml:"http"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`

	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// Variables from a .env file in the working directory are loaded first when present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

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

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		c.HTTP.Addr = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		c.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		c.Database.SQLitePath = v
	}
	if v := os.Getenv("NEWS_URL_TEMPLATE"); v != "" {
		c.News.URLTemplate = v
	}
	if v := os.Getenv("MARKET_SUFFIX"); v != "" {
		c.Market.Suffix = v
	}
	if v := os.Getenv("MARKET_INTERVAL"); v != "" {
		c.Market.Interval = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		c.Telegram.ChatID = v
	}
	if v := os.Getenv("DATA_SOURCE_PROVIDER"); v != "" {
		c.DataSource.Provider = v
	}
	if v := os.Getenv("DATA_SOURCE_BASE_URL"); v != "" {
		c.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_SOURCE_API_KEY"); v != "" {
		c.DataSource.APIKey = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"SMA_WINDOW", &c.Indicator.SMAWindow},
		{"NEWS_LIMIT", &c.News.Limit},
		{"LOOKBACK_YEARS", &c.Market.LookbackYears},
	}
	for _, e := range ints {
		v := os.Getenv(e.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("env %s: %w", e.key, err)
		}
		*e.dst = n
	}
	return nil
}
