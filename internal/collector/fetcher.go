package collector

import (
	"context"
	"time"

	"TickerDesk/internal/model"
)

// Provider retrieves OHLC bars from a market data source.
// start and end are calendar dates; both are inclusive.
type Provider interface {
	FetchBars(ctx context.Context, symbol, interval string, start, end time.Time) ([]model.PriceBar, error)
	Name() string
}
