package collector

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"TickerDesk/internal/cache"
	"TickerDesk/internal/model"
)

var fixedNow = time.Date(2024, 6, 14, 15, 30, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWindow(t *testing.T) {
	start, end := Window(fixedNow, 1)
	if !end.Equal(day(2024, 6, 14)) {
		t.Errorf("end = %v, want 2024-06-14", end)
	}
	if got := end.Sub(start); got != 365*24*time.Hour {
		t.Errorf("window = %v, want 365 days", got)
	}

	start, _ = Window(fixedNow, 2)
	if !start.Equal(day(2024, 6, 14).AddDate(0, 0, -730)) {
		t.Errorf("2y start = %v", start)
	}
}

func TestFetchHistory_UsesSuffixAndWindow(t *testing.T) {
	mock := &MockProvider{Price: 40}
	c := NewCollector(mock, ".SA", "1d", 1, WithClock(func() time.Time { return fixedNow }))

	h, err := c.FetchHistory(context.Background(), "WEGE3")
	if err != nil {
		t.Fatalf("FetchHistory() error = %v", err)
	}
	calls := mock.Calls()
	if len(calls) != 1 {
		t.Fatalf("provider calls = %d, want 1", len(calls))
	}
	call := calls[0]
	if call.Symbol != "WEGE3.SA" || call.Interval != "1d" {
		t.Errorf("call = %+v", call)
	}
	if !call.End.Equal(day(2024, 6, 14)) || !call.Start.Equal(day(2023, 6, 15)) {
		t.Errorf("window = %v..%v, want 2023-06-15..2024-06-14", call.Start, call.End)
	}
	if h.Symbol != "WEGE3.SA" || len(h.Bars) == 0 {
		t.Errorf("history = %s with %d bars", h.Symbol, len(h.Bars))
	}
	for i := 1; i < len(h.Bars); i++ {
		if !h.Bars[i].Date.After(h.Bars[i-1].Date) {
			t.Fatalf("bars not strictly increasing at %d", i)
		}
	}
}

func TestFetchHistory_ProviderErrorIsUnavailable(t *testing.T) {
	mock := &MockProvider{Err: errors.New("boom")}
	c := NewCollector(mock, ".SA", "1d", 1)

	_, err := c.FetchHistory(context.Background(), "WEGE3")
	if !errors.Is(err, ErrMarketDataUnavailable) {
		t.Fatalf("error = %v, want ErrMarketDataUnavailable", err)
	}
}

func TestFetchHistory_EmptySeriesIsUnavailable(t *testing.T) {
	mock := &MockProvider{Bars: []model.PriceBar{}}
	c := NewCollector(mock, ".SA", "1d", 1)

	_, err := c.FetchHistory(context.Background(), "WEGE3")
	if !errors.Is(err, ErrMarketDataUnavailable) {
		t.Fatalf("error = %v, want ErrMarketDataUnavailable", err)
	}
}

func TestFetchHistory_Cache(t *testing.T) {
	mock := &MockProvider{Price: 40}
	hc := cache.New[string, model.PriceHistory](time.Hour)
	c := NewCollector(mock, ".SA", "1d", 1, WithCache(hc), WithClock(func() time.Time { return fixedNow }))

	for i := 0; i < 3; i++ {
		if _, err := c.FetchHistory(context.Background(), "WEGE3"); err != nil {
			t.Fatalf("FetchHistory() error = %v", err)
		}
	}
	if n := len(mock.Calls()); n != 1 {
		t.Errorf("provider calls = %d, want 1 with cache", n)
	}

	if _, err := c.FetchHistory(context.Background(), "PETR4"); err != nil {
		t.Fatalf("FetchHistory() error = %v", err)
	}
	if n := len(mock.Calls()); n != 2 {
		t.Errorf("provider calls = %d, want 2 for a second symbol", n)
	}
}

func TestFetchHistory_NoCacheRefetches(t *testing.T) {
	mock := &MockProvider{Price: 40}
	c := NewCollector(mock, ".SA", "1d", 1)
	for i := 0; i < 2; i++ {
		if _, err := c.FetchHistory(context.Background(), "WEGE3"); err != nil {
			t.Fatalf("FetchHistory() error = %v", err)
		}
	}
	if n := len(mock.Calls()); n != 2 {
		t.Errorf("provider calls = %d, want 2", n)
	}
}

func TestNormalizeBars(t *testing.T) {
	in := []model.PriceBar{
		{Date: day(2024, 1, 3), Open: 1, High: 2, Low: 0.5, Close: 1.123456789},
		{Date: day(2024, 1, 2), Open: 1, High: 2, Low: 0.5, Close: 1},
		{Date: day(2024, 1, 3), Open: 1, High: 2, Low: 0.5, Close: 1.5},
		{Date: day(2024, 1, 4), Open: 0, High: 0, Low: 0, Close: 0},
	}
	got := normalizeBars(in)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2: %+v", len(got), got)
	}
	if !got[0].Date.Equal(day(2024, 1, 2)) || !got[1].Date.Equal(day(2024, 1, 3)) {
		t.Errorf("dates = %v, %v", got[0].Date, got[1].Date)
	}
	if got[1].Close != 1.5 {
		t.Errorf("duplicate date should keep last bar, got close %v", got[1].Close)
	}

	rounded := normalizeBars([]model.PriceBar{{Date: day(2024, 1, 2), Open: 1, High: 2, Low: 0.5, Close: 45.189998626708984}})
	if rounded[0].Close != 45.19 {
		t.Errorf("Close = %v, want 45.19", rounded[0].Close)
	}
}

func yahooResponse(timestamps []int64, closes []any) map[string]any {
	opens := make([]any, len(closes))
	highs := make([]any, len(closes))
	lows := make([]any, len(closes))
	for i, c := range closes {
		if c == nil {
			continue
		}
		v := c.(float64)
		opens[i], highs[i], lows[i] = v-0.5, v+1, v-1
	}
	return map[string]any{
		"chart": map[string]any{
			"result": []any{map[string]any{
				"meta":      map[string]any{"gmtoffset": -10800},
				"timestamp": timestamps,
				"indicators": map[string]any{
					"quote": []any{map[string]any{
						"open": opens, "high": highs, "low": lows, "close": closes,
					}},
				},
			}},
			"error": nil,
		},
	}
}

func TestYahooProvider_FetchBars(t *testing.T) {
	// 13:00 UTC market open on three consecutive days; the middle one is a holiday.
	ts := []int64{
		day(2024, 6, 10).Add(13 * time.Hour).Unix(),
		day(2024, 6, 11).Add(13 * time.Hour).Unix(),
		day(2024, 6, 12).Add(13 * time.Hour).Unix(),
	}
	var gotPath, gotInterval, gotP1, gotP2 string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotInterval = r.URL.Query().Get("interval")
		gotP1 = r.URL.Query().Get("period1")
		gotP2 = r.URL.Query().Get("period2")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(yahooResponse(ts, []any{40.0, nil, 42.0}))
	}))
	defer server.Close()

	p := NewYahooProvider("")
	p.BaseURL = server.URL
	start, end := day(2024, 6, 1), day(2024, 6, 12)

	bars, err := p.FetchBars(context.Background(), "WEGE3.SA", "1d", start, end)
	if err != nil {
		t.Fatalf("FetchBars() error = %v", err)
	}
	if gotPath != "/WEGE3.SA" || gotInterval != "1d" {
		t.Errorf("request = %s interval=%s", gotPath, gotInterval)
	}
	if gotP1 != strconv.FormatInt(start.Unix(), 10) || gotP2 != strconv.FormatInt(day(2024, 6, 13).Unix(), 10) {
		t.Errorf("period1/period2 = %s/%s", gotP1, gotP2)
	}
	if len(bars) != 2 {
		t.Fatalf("len(bars) = %d, want 2 (null bar skipped)", len(bars))
	}
	if !bars[0].Date.Equal(day(2024, 6, 10)) || !bars[1].Date.Equal(day(2024, 6, 12)) {
		t.Errorf("dates = %v, %v", bars[0].Date, bars[1].Date)
	}
	if bars[1].Close != 42 || bars[1].High != 43 {
		t.Errorf("bar = %+v", bars[1])
	}
}

func TestYahooProvider_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		payload string
	}{
		{"non-200", http.StatusNotFound, `{}`},
		{"api error", http.StatusOK, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`},
		{"empty result", http.StatusOK, `{"chart":{"result":[],"error":null}}`},
		{"malformed", http.StatusOK, `{"chart":`},
		{"short arrays", http.StatusOK, `{"chart":{"result":[{"timestamp":[1,2],"indicators":{"quote":[{"open":[1],"high":[1],"low":[1],"close":[1]}]}}]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.payload))
			}))
			defer server.Close()

			p := NewYahooProvider("")
			p.BaseURL = server.URL
			if _, err := p.FetchBars(context.Background(), "X", "1d", day(2024, 1, 1), day(2024, 2, 1)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRESTProvider_WeeklyFallback(t *testing.T) {
	var weeklyCalls, dailyCalls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Query().Get("interval") == "1wk" {
			weeklyCalls.Add(1)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		dailyCalls.Add(1)
		bars := []restBar{}
		// Mon 2024-06-03 .. Fri 2024-06-07, then Mon 2024-06-10.
		for i, d := range []time.Time{day(2024, 6, 3), day(2024, 6, 4), day(2024, 6, 7), day(2024, 6, 10)} {
			p := float64(10 + i)
			bars = append(bars, restBar{Timestamp: d.Unix(), Open: p, High: p + 1, Low: p - 1, Close: p + 0.5})
		}
		json.NewEncoder(w).Encode(bars)
	}))
	defer server.Close()

	p := NewRESTProvider(server.URL, "secret", "")
	bars, err := p.FetchBars(context.Background(), "WEGE3.SA", "1wk", day(2024, 6, 1), day(2024, 6, 14))
	if err != nil {
		t.Fatalf("FetchBars() error = %v", err)
	}
	if weeklyCalls.Load() != 1 || dailyCalls.Load() != 1 {
		t.Errorf("calls weekly=%d daily=%d", weeklyCalls.Load(), dailyCalls.Load())
	}
	if len(bars) != 2 {
		t.Fatalf("len(bars) = %d, want 2 weeks", len(bars))
	}
	w := bars[0]
	if !w.Date.Equal(day(2024, 6, 3)) || w.Open != 10 || w.High != 13 || w.Low != 9 || w.Close != 12.5 {
		t.Errorf("first week = %+v", w)
	}
}
