package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"TickerDesk/internal/model"
)

// RESTProvider implements Provider against a generic JSON bars endpoint:
//
//	GET {base}/api/v1/bars?symbol=X&interval=1d&start=2006-01-02&end=2006-01-02
type RESTProvider struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewRESTProvider creates a new provider with optional proxy support.
func NewRESTProvider(baseURL, apiKey, proxyURL string) *RESTProvider {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &RESTProvider{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (p *RESTProvider) Name() string { return "rest" }

// restBar is the expected JSON shape from the bars endpoint.
type restBar struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
}

func (p *RESTProvider) FetchBars(ctx context.Context, symbol, interval string, start, end time.Time) ([]model.PriceBar, error) {
	bars, err := p.fetchBars(ctx, symbol, interval, start, end)
	if err == nil || interval != "1wk" {
		return bars, err
	}

	// Weekly endpoint unavailable: aggregate daily bars instead.
	daily, dailyErr := p.fetchBars(ctx, symbol, "1d", start, end)
	if dailyErr != nil {
		return nil, fmt.Errorf("weekly fetch failed: %w; daily fallback also failed: %w", err, dailyErr)
	}
	return aggregateDailyToWeekly(daily), nil
}

func (p *RESTProvider) fetchBars(ctx context.Context, symbol, interval string, start, end time.Time) ([]model.PriceBar, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("interval", interval)
	q.Set("start", start.Format(time.DateOnly))
	q.Set("end", end.Format(time.DateOnly))
	endpoint := fmt.Sprintf("%s/api/v1/bars?%s", p.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if p.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.APIKey)
	}
	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch bars: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("fetch bars: status %d, body: %s", resp.StatusCode, string(body))
	}

	var raw []restBar
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode bars: %w", err)
	}
	bars := make([]model.PriceBar, len(raw))
	for i, rb := range raw {
		bars[i] = model.PriceBar{
			Date:  tradingDay(rb.Timestamp, 0),
			Open:  rb.Open,
			High:  rb.High,
			Low:   rb.Low,
			Close: rb.Close,
		}
	}
	return bars, nil
}

// aggregateDailyToWeekly converts ascending daily bars into ISO-week bars.
// Each weekly bar is dated by the first trading day of its week.
func aggregateDailyToWeekly(daily []model.PriceBar) []model.PriceBar {
	var weekly []model.PriceBar
	for _, d := range daily {
		if n := len(weekly); n > 0 && sameISOWeek(weekly[n-1].Date, d.Date) {
			w := &weekly[n-1]
			w.High = max(w.High, d.High)
			w.Low = min(w.Low, d.Low)
			w.Close = d.Close
			continue
		}
		weekly = append(weekly, d)
	}
	return weekly
}

func sameISOWeek(a, b time.Time) bool {
	ay, aw := a.ISOWeek()
	by, bw := b.ISOWeek()
	return ay == by && aw == bw
}
