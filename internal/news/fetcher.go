package news

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"TickerDesk/internal/model"
)

// ErrSourceUnavailable covers non-200 responses, transport failures and pages
// with no recognizable headlines.
var ErrSourceUnavailable = errors.New("news source unavailable")

// StatusError reports a non-200 response from the news site.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status code: %d", e.StatusCode)
}

// Fetcher queries a news search page and extracts headlines.
type Fetcher struct {
	urlTemplate string
	extractor   Extractor
	userAgent   string
	client      *http.Client
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(f *Fetcher) { f.client = hc }
}

// WithUserAgent sets the User-Agent header sent with each search.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) { f.userAgent = ua }
}

// NewFetcher creates a fetcher for a search URL template containing one %s,
// which is replaced by the lower-cased company name. proxyURL is optional.
func NewFetcher(urlTemplate string, extractor Extractor, proxyURL string, opts ...Option) *Fetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	f := &Fetcher{
		urlTemplate: urlTemplate,
		extractor:   extractor,
		client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// SearchURL builds the search URL for a company.
func (f *Fetcher) SearchURL(company string) string {
	query := url.QueryEscape(strings.ToLower(strings.TrimSpace(company)))
	return fmt.Sprintf(f.urlTemplate, query)
}

// Fetch returns the headlines found for company in document order.
func (f *Fetcher) Fetch(ctx context.Context, company string) ([]model.NewsItem, error) {
	searchURL := f.SearchURL(company)
	base, err := url.Parse(searchURL)
	if err != nil {
		return nil, fmt.Errorf("news url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("news request: %w", err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, &StatusError{StatusCode: resp.StatusCode})
	}

	items, err := f.extractor.Extract(resp.Body, base)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no headlines matched", ErrSourceUnavailable)
	}
	return items, nil
}
