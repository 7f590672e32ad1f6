package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/guregu/null/v6"

	"TickerDesk/internal/model"
)

const yahooChartURL = "https://query1.finance.yahoo.com/v8/finance/chart"

// YahooProvider implements Provider using the Yahoo Finance chart API.
type YahooProvider struct {
	BaseURL string
	Client  *http.Client
}

// NewYahooProvider creates a Yahoo Finance provider with optional proxy support.
func NewYahooProvider(proxyURL string) *YahooProvider {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooProvider{
		BaseURL: yahooChartURL,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (p *YahooProvider) Name() string { return "yahoo" }

// yahooChart is the response structure from Yahoo Finance chart API.
// Quote values are null on days without trading.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				GMTOffset int64 `json:"gmtoffset"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open  []null.Float `json:"open"`
					High  []null.Float `json:"high"`
					Low   []null.Float `json:"low"`
					Close []null.Float `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (p *YahooProvider) FetchBars(ctx context.Context, symbol, interval string, start, end time.Time) ([]model.PriceBar, error) {
	q := url.Values{}
	q.Set("interval", interval)
	q.Set("period1", fmt.Sprint(start.Unix()))
	q.Set("period2", fmt.Sprint(end.AddDate(0, 0, 1).Unix()))
	u := fmt.Sprintf("%s/%s?%s", p.BaseURL, url.PathEscape(symbol), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, truncate(body, 256))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned")
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: no quote data")
	}
	quote := result.Indicators.Quote[0]
	n := len(result.Timestamp)
	if len(quote.Open) < n || len(quote.High) < n || len(quote.Low) < n || len(quote.Close) < n {
		return nil, fmt.Errorf("yahoo: malformed quote arrays")
	}

	bars := make([]model.PriceBar, 0, n)
	for i, ts := range result.Timestamp {
		o, h, l, c := quote.Open[i], quote.High[i], quote.Low[i], quote.Close[i]
		if !o.Valid || !h.Valid || !l.Valid || !c.Valid {
			continue // null bars (holidays etc.)
		}
		bars = append(bars, model.PriceBar{
			Date:  tradingDay(ts, result.Meta.GMTOffset),
			Open:  o.Float64,
			High:  h.Float64,
			Low:   l.Float64,
			Close: c.Float64,
		})
	}
	return bars, nil
}

// tradingDay converts a bar timestamp to its calendar date on the exchange.
func tradingDay(ts, gmtOffset int64) time.Time {
	t := time.Unix(ts+gmtOffset, 0).UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
