package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if len(c.Tickers) == 0 {
		return errors.New("tickers must not be empty")
	}
	for symbol, name := range c.Tickers {
		if strings.TrimSpace(symbol) == "" {
			return errors.New("tickers: empty symbol")
		}
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("tickers.%s: company name is required", symbol)
		}
	}
	if _, ok := c.Tickers[c.DefaultTicker]; !ok {
		return fmt.Errorf("default_ticker %q is not in tickers", c.DefaultTicker)
	}

	if strings.Count(c.News.URLTemplate, "%s") != 1 {
		return fmt.Errorf("news.url_template must contain exactly one %%s, got %q", c.News.URLTemplate)
	}
	if c.News.Limit < 1 {
		return errors.New("news.limit must be >= 1")
	}

	switch c.Market.Interval {
	case "1d", "1wk":
	default:
		return fmt.Errorf("market.interval must be 1d or 1wk, got %q", c.Market.Interval)
	}
	switch c.DataSource.Provider {
	case "yahoo", "mock":
	case "rest":
		if c.DataSource.BaseURL == "" {
			return errors.New("data_source.base_url is required for the rest provider")
		}
	default:
		return fmt.Errorf("data_source.provider must be yahoo, rest or mock, got %q", c.DataSource.Provider)
	}
	if c.Market.LookbackYears < 1 {
		return errors.New("market.lookback_years must be >= 1")
	}

	if c.Indicator.SMAWindow < 1 {
		return errors.New("indicator.sma_window must be >= 1")
	}
	if c.Indicator.RSIPeriod < 1 {
		return errors.New("indicator.rsi_period must be >= 1")
	}

	if c.Cache.TTL < 0 {
		return errors.New("cache.ttl must be >= 0")
	}
	if c.Schedule.RetentionDays < 1 {
		return errors.New("schedule.retention_days must be >= 1")
	}

	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return errors.New("telegram.bot_token and telegram.chat_id must be set together")
	}
	return nil
}

// TelegramEnabled reports whether the Telegram front-end is configured.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}
