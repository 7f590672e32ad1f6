package collector

import (
	"context"
	"sync"
	"time"

	"TickerDesk/internal/model"
)

// MockProvider returns controllable fixed data for development and testing.
type MockProvider struct {
	Price float64
	Bars  []model.PriceBar
	Err   error

	mu    sync.Mutex
	calls []MockCall
}

// MockCall records the arguments of one FetchBars call.
type MockCall struct {
	Symbol     string
	Interval   string
	Start, End time.Time
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) FetchBars(_ context.Context, symbol, interval string, start, end time.Time) ([]model.PriceBar, error) {
	m.mu.Lock()
	m.calls = append(m.calls, MockCall{Symbol: symbol, Interval: interval, Start: start, End: end})
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	if m.Bars != nil {
		out := make([]model.PriceBar, len(m.Bars))
		copy(out, m.Bars)
		return out, nil
	}
	return generateMockBars(m.Price, start, end), nil
}

// Calls returns the recorded FetchBars calls.
func (m *MockProvider) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// generateMockBars produces one bar per weekday in [start, end].
func generateMockBars(basePrice float64, start, end time.Time) []model.PriceBar {
	if basePrice == 0 {
		basePrice = 40
	}
	var bars []model.PriceBar
	i := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		p := basePrice * (1 + float64(i%40-20)*0.002)
		bars = append(bars, model.PriceBar{
			Date:  time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC),
			Open:  p * 0.999,
			High:  p * 1.005,
			Low:   p * 0.995,
			Close: p,
		})
		i++
	}
	return bars
}
