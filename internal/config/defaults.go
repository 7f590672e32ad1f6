package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultTicker          = "WEGE3"
	DefaultNewsURLTemplate = "https://braziljournal.com/?s=%s"
	DefaultBlockSelector   = "h2.boxarticle-infos-title"
	DefaultLinkSelector    = "a"
	DefaultNewsLimit       = 10
	DefaultUserAgent       = "Mozilla/5.0"
	DefaultFetchTimeout    = 15 * time.Second
	DefaultMarketSuffix    = ".SA"
	DefaultInterval        = "1d"
	DefaultLookbackYears   = 1
	DefaultSMAWindow       = 20
	DefaultRSIPeriod       = 14
	DefaultSweepCron       = "0 */5 * * * *"
	DefaultRetentionCron   = "0 0 3 * * *"
	DefaultRetentionDays   = 30
	DefaultSQLitePath      = "data/tickerdesk.db"
	DefaultHTTPAddr        = ":8050"
	DefaultLogLevel        = "info"
)

// DefaultTickers is the ticker to company name mapping used when none is configured.
func DefaultTickers() map[string]string {
	return map[string]string{
		"CEAB3": "C&A",
		"WEGE3": "WEG",
		"PETR4": "Petrobras",
	}
}

func (c *Config) applyDefaults() {
	if len(c.Tickers) == 0 {
		c.Tickers = DefaultTickers()
	}
	if c.DefaultTicker == "" {
		c.DefaultTicker = DefaultTicker
	}

	// News
	if c.News.URLTemplate == "" {
		c.News.URLTemplate = DefaultNewsURLTemplate
	}
	if c.News.BlockSelector == "" {
		c.News.BlockSelector = DefaultBlockSelector
	}
	if c.News.LinkSelector == "" {
		c.News.LinkSelector = DefaultLinkSelector
	}
	if c.News.Limit == 0 {
		c.News.Limit = DefaultNewsLimit
	}
	if c.News.UserAgent == "" {
		c.News.UserAgent = DefaultUserAgent
	}
	if c.News.Timeout == 0 {
		c.News.Timeout = DefaultFetchTimeout
	}

	// Market data
	if c.Market.Suffix == "" {
		c.Market.Suffix = DefaultMarketSuffix
	}
	if c.Market.Interval == "" {
		c.Market.Interval = DefaultInterval
	}
	if c.Market.LookbackYears == 0 {
		c.Market.LookbackYears = DefaultLookbackYears
	}
	if c.DataSource.Provider == "" {
		c.DataSource.Provider = "yahoo"
		if c.DataSource.BaseURL != "" {
			c.DataSource.Provider = "rest"
		}
	}
	if c.Market.Timeout == 0 {
		c.Market.Timeout = DefaultFetchTimeout
	}

	// Indicators
	if c.Indicator.SMAWindow == 0 {
		c.Indicator.SMAWindow = DefaultSMAWindow
	}
	if c.Indicator.RSIPeriod == 0 {
		c.Indicator.RSIPeriod = DefaultRSIPeriod
	}

	// Maintenance
	if c.Schedule.SweepCron == "" {
		c.Schedule.SweepCron = DefaultSweepCron
	}
	if c.Schedule.RetentionCron == "" {
		c.Schedule.RetentionCron = DefaultRetentionCron
	}
	if c.Schedule.RetentionDays == 0 {
		c.Schedule.RetentionDays = DefaultRetentionDays
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = DefaultSQLitePath
	}

	if c.HTTP.Addr == "" {
		c.HTTP.Addr = DefaultHTTPAddr
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}
