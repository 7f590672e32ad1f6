package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"TickerDesk/internal/calculator"
	"TickerDesk/internal/chart"
	"TickerDesk/internal/model"
	"TickerDesk/internal/recorder"
)

// NewsUnavailableMessage is reported in Result.NewsError when headlines could not be fetched.
const NewsUnavailableMessage = "News temporarily unavailable"

// Resolver maps a ticker to its company name.
type Resolver interface {
	Resolve(ticker string) (string, error)
}

// NewsSource returns headlines for a company in page order.
type NewsSource interface {
	Fetch(ctx context.Context, company string) ([]model.NewsItem, error)
}

// HistorySource returns the price history of a ticker over the configured window.
type HistorySource interface {
	FetchHistory(ctx context.Context, ticker string) (*model.PriceHistory, error)
	ProviderName() string
}

// Result is everything the presentation layer needs for one selection.
type Result struct {
	RequestID string           `json:"request_id"`
	Ticker    string           `json:"ticker"`
	Company   string           `json:"company,omitempty"`
	News      []model.NewsItem `json:"news"`
	NewsError string           `json:"news_error,omitempty"`
	Chart     model.ChartSpec  `json:"chart"`
}

// Pipeline turns a ticker selection into news plus a chart.
type Pipeline struct {
	resolver      Resolver
	news          NewsSource
	history       HistorySource
	recorder      recorder.Recorder
	meta          model.ChartMetadata
	newsLimit     int
	smaWindow     int
	rsiPeriod     int
	newsTimeout   time.Duration
	marketTimeout time.Duration
	now           func() time.Time
	logger        *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithRecorder sets the fetch diagnostics recorder.
func WithRecorder(r recorder.Recorder) Option {
	return func(p *Pipeline) { p.recorder = r }
}

// WithChartMetadata sets the chart layout.
func WithChartMetadata(meta model.ChartMetadata) Option {
	return func(p *Pipeline) { p.meta = meta }
}

// WithNewsLimit sets how many headlines are displayed.
func WithNewsLimit(n int) Option {
	return func(p *Pipeline) { p.newsLimit = n }
}

// WithSMAWindow sets the moving average window.
func WithSMAWindow(n int) Option {
	return func(p *Pipeline) { p.smaWindow = n }
}

// WithRSIPeriod sets the RSI period used for chart annotations.
func WithRSIPeriod(n int) Option {
	return func(p *Pipeline) { p.rsiPeriod = n }
}

// WithTimeouts bounds each outbound fetch.
func WithTimeouts(news, market time.Duration) Option {
	return func(p *Pipeline) {
		p.newsTimeout = news
		p.marketTimeout = market
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = logger }
}

// New creates a Pipeline with the standard chart layout, a 10 item news limit,
// a 20 period SMA and 15 second fetch timeouts.
func New(resolver Resolver, news NewsSource, history HistorySource, opts ...Option) *Pipeline {
	p := &Pipeline{
		resolver:      resolver,
		news:          news,
		history:       history,
		recorder:      recorder.NewNoopRecorder(),
		meta:          chart.DefaultMetadata(),
		newsLimit:     10,
		smaWindow:     20,
		rsiPeriod:     14,
		newsTimeout:   15 * time.Second,
		marketTimeout: 15 * time.Second,
		now:           time.Now,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// HandleSelection runs the full update for ticker. It never fails: unknown
// tickers yield a placeholder headline and an empty chart, and each fetch
// failure only empties its own part of the result.
func (p *Pipeline) HandleSelection(ctx context.Context, ticker string) Result {
	reqID := uuid.NewString()
	res := Result{RequestID: reqID, Ticker: ticker}

	company, err := p.resolver.Resolve(ticker)
	if err != nil {
		p.logger.Info("ticker rejected", "request_id", reqID, "ticker", ticker, "error", err)
		res.News = []model.NewsItem{{Headline: fmt.Sprintf("Invalid ticker: %s", ticker)}}
		res.Chart = chart.Empty(p.meta)
		return res
	}
	res.Company = company

	var (
		items   []model.NewsItem
		newsErr error
		history *model.PriceHistory
		histErr error
	)

	// Both goroutines always return nil so one failure never cancels the other.
	var g errgroup.Group
	g.Go(func() error {
		fctx, cancel := context.WithTimeout(ctx, p.newsTimeout)
		defer cancel()
		start := p.now()
		items, newsErr = p.news.Fetch(fctx, company)
		newsErr = markTimeout(fctx, newsErr)
		p.observe(reqID, ticker, recorder.SourceNews, "", len(items), start, newsErr)
		return nil
	})
	g.Go(func() error {
		fctx, cancel := context.WithTimeout(ctx, p.marketTimeout)
		defer cancel()
		start := p.now()
		history, histErr = p.history.FetchHistory(fctx, ticker)
		histErr = markTimeout(fctx, histErr)
		n := 0
		if history != nil {
			n = len(history.Bars)
		}
		p.observe(reqID, ticker, recorder.SourceMarket, p.history.ProviderName(), n, start, histErr)
		return nil
	})
	_ = g.Wait()

	if newsErr != nil {
		res.News = []model.NewsItem{}
		res.NewsError = NewsUnavailableMessage
	} else {
		res.News = truncate(items, p.newsLimit)
	}

	if histErr != nil || history == nil {
		res.Chart = chart.Empty(p.meta)
		return res
	}
	res.Chart = p.buildChart(reqID, history.Bars)
	return res
}

func (p *Pipeline) buildChart(reqID string, bars []model.PriceBar) model.ChartSpec {
	sma, err := calculator.SMASeries(bars, p.smaWindow)
	if err != nil {
		p.logger.Warn("sma failed", "request_id", reqID, "error", err)
		sma = nil
	}
	spec := chart.Build(bars, sma, p.meta)

	ann, err := calculator.Annotate(bars, sma, p.rsiPeriod)
	if err != nil {
		p.logger.Warn("annotate failed", "request_id", reqID, "error", err)
		return spec
	}
	return chart.WithAnnotations(spec, ann)
}

// observe emits the per-fetch log line and diagnostics event.
func (p *Pipeline) observe(reqID, ticker, source, provider string, items int, start time.Time, err error) {
	elapsed := p.now().Sub(start)
	evt := &recorder.FetchEvent{
		RequestID: reqID,
		Ticker:    ticker,
		Source:    source,
		Provider:  provider,
		Status:    recorder.StatusOK,
		Items:     items,
		Duration:  elapsed,
		At:        start,
	}
	attrs := []any{
		"request_id", reqID,
		"ticker", ticker,
		"source", source,
		"items", items,
		"duration", elapsed,
	}
	if provider != "" {
		attrs = append(attrs, "provider", provider)
	}

	if err != nil {
		evt.Status = recorder.StatusUnavailable
		evt.Error = err.Error()
		p.logger.Warn("fetch failed", append(attrs, "status", evt.Status, "error", evt.Error)...)
	} else {
		p.logger.Info("fetch completed", append(attrs, "status", evt.Status)...)
	}

	if rerr := p.recorder.RecordFetch(evt); rerr != nil {
		p.logger.Error("record fetch", "request_id", reqID, "error", rerr)
	}
}

// markTimeout tags err when the fetch context hit its deadline.
func markTimeout(ctx context.Context, err error) error {
	if err != nil && ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("timeout: %w", err)
	}
	return err
}

func truncate(items []model.NewsItem, limit int) []model.NewsItem {
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	out := make([]model.NewsItem, len(items))
	copy(out, items)
	return out
}
