package collector

import (
	"sort"

	"github.com/shopspring/decimal"

	"TickerDesk/internal/model"
)

// pricePlaces is the precision kept for provider prices.
const pricePlaces = 4

// normalizeBars rounds prices, drops non-positive bars and orders the series
// strictly by date. For duplicate dates the last bar received wins.
func normalizeBars(in []model.PriceBar) []model.PriceBar {
	bars := make([]model.PriceBar, 0, len(in))
	for _, b := range in {
		if b.Open <= 0 || b.High <= 0 || b.Low <= 0 || b.Close <= 0 {
			continue
		}
		bars = append(bars, model.PriceBar{
			Date:  b.Date,
			Open:  roundPrice(b.Open),
			High:  roundPrice(b.High),
			Low:   roundPrice(b.Low),
			Close: roundPrice(b.Close),
		})
	}

	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })

	out := bars[:0]
	for _, b := range bars {
		if n := len(out); n > 0 && out[n-1].Date.Equal(b.Date) {
			out[n-1] = b
			continue
		}
		out = append(out, b)
	}
	return out
}

func roundPrice(v float64) float64 {
	return decimal.NewFromFloat(v).Round(pricePlaces).InexactFloat64()
}
