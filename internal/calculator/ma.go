package calculator

import (
	"errors"

	"github.com/guregu/null/v6"

	"TickerDesk/internal/model"
)

// ErrInvalidWindow is returned for a non-positive averaging window.
var ErrInvalidWindow = errors.New("window must be positive")

// CalculateSMA computes the simple moving average of the last period prices.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, ErrInvalidWindow
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// SimpleMovingAverage returns the trailing SMA of values, aligned index for index.
// Entries before the window fills are null.
func SimpleMovingAverage(values []float64, window int) ([]null.Float, error) {
	if window <= 0 {
		return nil, ErrInvalidWindow
	}
	out := make([]null.Float, len(values))
	for i := window - 1; i < len(values); i++ {
		avg, err := CalculateSMA(values[:i+1], window)
		if err != nil {
			return nil, err
		}
		out[i] = null.FloatFrom(avg)
	}
	return out, nil
}

// SMASeries computes the close-price SMA and dates each value with its bar.
func SMASeries(bars []model.PriceBar, window int) ([]model.IndicatorPoint, error) {
	values, err := SimpleMovingAverage(ExtractCloses(bars), window)
	if err != nil {
		return nil, err
	}
	points := make([]model.IndicatorPoint, len(bars))
	for i, b := range bars {
		points[i] = model.IndicatorPoint{Date: b.Date, Value: values[i]}
	}
	return points, nil
}

// ExtractCloses returns the close prices of bars in order.
func ExtractCloses(bars []model.PriceBar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
