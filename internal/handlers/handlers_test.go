package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"TickerDesk/internal/model"
	"TickerDesk/internal/pipeline"
	"TickerDesk/internal/recorder"
)

type stubSelector struct{ got string }

func (s *stubSelector) HandleSelection(_ context.Context, ticker string) pipeline.Result {
	s.got = ticker
	if ticker != "WEGE3" {
		return pipeline.Result{
			Ticker: ticker,
			News:   []model.NewsItem{{Headline: "Invalid ticker: " + ticker}},
			Chart:  model.ChartSpec{Empty: true},
		}
	}
	return pipeline.Result{
		Ticker:  ticker,
		Company: "WEG",
		News:    []model.NewsItem{{Headline: "WEG expands", Link: "https://example.com/1"}},
	}
}

type stubLister struct{}

func (stubLister) Tickers() []string { return []string{"CEAB3", "PETR4", "WEGE3"} }
func (stubLister) Default() string { return "WEGE3" }

type stubStats struct {
	stats []recorder.SourceStats
	err   error
}

func (s stubStats) Stats(time.Time) ([]recorder.SourceStats, error) { return s.stats, s.err }

func newTestApp(sel Selector, stats StatsSource) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: CustomErrorHandler})
	Register(app, NewDashboardHandler(sel, stubLister{}, stats, 5*time.Second), NewHealthHandler("test"))
	return app
}

func doGet(t *testing.T, app *fiber.App, path string, out any) int {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
	}
	return resp.StatusCode
}

func TestHealth(t *testing.T) {
	var body map[string]any
	if code := doGet(t, newTestApp(&stubSelector{}, nil), "/health", &body); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if body["status"] != "healthy" || body["version"] != "test" {
		t.Errorf("body = %v", body)
	}
}

func TestListTickers(t *testing.T) {
	var body struct {
		Tickers []string `json:"tickers"`
		Default string   `json:"default"`
	}
	if code := doGet(t, newTestApp(&stubSelector{}, nil), "/api/v1/tickers", &body); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if len(body.Tickers) != 3 || body.Default != "WEGE3" {
		t.Errorf("body = %+v", body)
	}
}

func TestDashboard(t *testing.T) {
	sel := &stubSelector{}
	app := newTestApp(sel, nil)

	var res pipeline.Result
	if code := doGet(t, app, "/api/v1/dashboard/wege3", &res); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if sel.got != "WEGE3" {
		t.Errorf("selected %q, want WEGE3", sel.got)
	}
	if res.Company != "WEG" || len(res.News) != 1 {
		t.Errorf("result = %+v", res)
	}

	var def pipeline.Result
	doGet(t, app, "/api/v1/dashboard", &def)
	if def.Ticker != "WEGE3" {
		t.Errorf("default dashboard ticker = %q", def.Ticker)
	}
}

func TestDashboard_UnknownTickerIs200(t *testing.T) {
	var res pipeline.Result
	code := doGet(t, newTestApp(&stubSelector{}, nil), "/api/v1/dashboard/BADSYM", &res)
	if code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if len(res.News) != 1 || res.News[0].Headline != "Invalid ticker: BADSYM" || !res.Chart.Empty {
		t.Errorf("result = %+v", res)
	}
}

func TestDiagnostics(t *testing.T) {
	stats := stubStats{stats: []recorder.SourceStats{{Source: "news", Total: 4, Unavailable: 1}}}

	var body struct {
		Sources []recorder.SourceStats `json:"sources"`
	}
	if code := doGet(t, newTestApp(&stubSelector{}, stats), "/api/v1/diagnostics?hours=2", &body); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if len(body.Sources) != 1 || body.Sources[0].Unavailable != 1 {
		t.Errorf("sources = %+v", body.Sources)
	}

	var errBody ErrorResponse
	if code := doGet(t, newTestApp(&stubSelector{}, nil), "/api/v1/diagnostics", &errBody); code != http.StatusNotFound {
		t.Errorf("disabled status = %d, want 404", code)
	}
	if errBody.Code != http.StatusNotFound {
		t.Errorf("error body = %+v", errBody)
	}

	if code := doGet(t, newTestApp(&stubSelector{}, stats), "/api/v1/diagnostics?hours=0", nil); code != http.StatusBadRequest {
		t.Errorf("hours=0 status = %d, want 400", code)
	}
	failing := stubStats{err: errors.New("db closed")}
	if code := doGet(t, newTestApp(&stubSelector{}, failing), "/api/v1/diagnostics", nil); code != http.StatusInternalServerError {
		t.Errorf("failing status = %d, want 500", code)
	}
}

func TestUnknownRoute(t *testing.T) {
	var body ErrorResponse
	if code := doGet(t, newTestApp(&stubSelector{}, nil), "/nope", &body); code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", code)
	}
}
