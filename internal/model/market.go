package model

import (
	"time"

	"github.com/guregu/null/v6"
)

// PriceBar represents a single daily candlestick bar.
type PriceBar struct {
	Date  time.Time `json:"date"`
	Open  float64   `json:"open"`
	High  float64   `json:"high"`
	Low   float64   `json:"low"`
	Close float64   `json:"close"`
}

// PriceHistory holds the bars returned for one provider query.
type PriceHistory struct {
	Symbol    string
	Interval  string
	Start     time.Time
	End       time.Time
	Bars      []PriceBar
	FetchedAt time.Time
}

// IndicatorPoint is one value of a derived series, aligned to a bar date.
// Value is null while the indicator window is not yet full.
type IndicatorPoint struct {
	Date  time.Time  `json:"date"`
	Value null.Float `json:"value"`
}
