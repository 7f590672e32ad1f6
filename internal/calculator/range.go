package calculator

import (
	"errors"
	"math"

	"TickerDesk/internal/model"
)

// HighLow scans the most recent lookback bars and returns the high and low.
// A non-positive lookback scans every bar.
func HighLow(bars []model.PriceBar, lookback int) (high, low float64, err error) {
	if len(bars) == 0 {
		return 0, 0, errors.New("no bars provided")
	}
	n := len(bars)
	start := 0
	if lookback > 0 && n > lookback {
		start = n - lookback
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, b := range bars[start:] {
		high = math.Max(high, b.High)
		low = math.Min(low, b.Low)
	}
	return high, low, nil
}

// RangePosition returns where current sits within [low, high] (0.0~1.0).
func RangePosition(current, high, low float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	pos := (current - low) / (high - low)
	return math.Min(math.Max(pos, 0), 1), nil
}
