package collector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"TickerDesk/internal/cache"
	"TickerDesk/internal/model"
)

// ErrMarketDataUnavailable covers provider errors, empty series and malformed responses.
var ErrMarketDataUnavailable = errors.New("market data unavailable")

// HistoryCache stores provider results keyed by symbol, interval and window.
type HistoryCache = cache.Cache[string, model.PriceHistory]

// Collector fetches the price history for a ticker over a lookback window.
type Collector struct {
	provider      Provider
	suffix        string
	interval      string
	lookbackYears int
	cache         *HistoryCache
	now           func() time.Time
	logger        *slog.Logger
}

// Option configures a Collector.
type Option func(*Collector)

// WithCache enables a time-bounded history cache.
func WithCache(c *HistoryCache) Option {
	return func(col *Collector) { col.cache = c }
}

// WithClock overrides the clock used to compute the window.
func WithClock(now func() time.Time) Option {
	return func(col *Collector) { col.now = now }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(col *Collector) { col.logger = logger }
}

// NewCollector creates a new Collector. suffix is appended to tickers to form
// the provider symbol (e.g. ".SA" for B3 listings).
func NewCollector(provider Provider, suffix, interval string, lookbackYears int, opts ...Option) *Collector {
	c := &Collector{
		provider:      provider,
		suffix:        suffix,
		interval:      interval,
		lookbackYears: lookbackYears,
		now:           time.Now,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Window returns the calendar window [start, end] ending on the day of now.
// It is 365 days per lookback year, not trading days.
func Window(now time.Time, lookbackYears int) (start, end time.Time) {
	end = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	start = end.AddDate(0, 0, -365*lookbackYears)
	return start, end
}

// Symbol returns the provider symbol for a ticker.
func (c *Collector) Symbol(ticker string) string { return ticker + c.suffix }

// ProviderName returns the name of the underlying provider.
func (c *Collector) ProviderName() string { return c.provider.Name() }

// FetchHistory retrieves the ordered daily bars for ticker.
// All failures are reported as ErrMarketDataUnavailable.
func (c *Collector) FetchHistory(ctx context.Context, ticker string) (*model.PriceHistory, error) {
	start, end := Window(c.now(), c.lookbackYears)
	symbol := c.Symbol(ticker)
	key := fmt.Sprintf("%s|%s|%s", symbol, c.interval, start.Format(time.DateOnly))

	if c.cache != nil {
		if h, ok := c.cache.Get(key); ok {
			c.logger.Debug("history cache hit", "symbol", symbol)
			return &h, nil
		}
	}

	raw, err := c.provider.FetchBars(ctx, symbol, c.interval, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrMarketDataUnavailable, c.provider.Name(), symbol, err)
	}
	bars := normalizeBars(raw)
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: %s %s: empty series", ErrMarketDataUnavailable, c.provider.Name(), symbol)
	}

	h := model.PriceHistory{
		Symbol:    symbol,
		Interval:  c.interval,
		Start:     start,
		End:       end,
		Bars:      bars,
		FetchedAt: c.now(),
	}
	if c.cache != nil {
		c.cache.Set(key, h)
	}
	return &h, nil
}
