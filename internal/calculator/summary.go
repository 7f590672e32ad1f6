package calculator

import (
	"errors"
	"fmt"

	"TickerDesk/internal/model"
)

var errNoBars = errors.New("no bars to annotate")

// Annotate summarizes the plotted period: last close and SMA, the period
// high/low with the position of the last close inside it, and the latest RSI.
func Annotate(bars []model.PriceBar, sma []model.IndicatorPoint, rsiPeriod int) (*model.Annotations, error) {
	if len(bars) == 0 {
		return nil, errNoBars
	}
	last := bars[len(bars)-1]

	high, low, err := HighLow(bars, 0)
	if err != nil {
		return nil, err
	}
	pos, err := RangePosition(last.Close, high, low)
	if err != nil {
		return nil, fmt.Errorf("range position: %w", err)
	}
	rsi, err := RSI(ExtractCloses(bars), rsiPeriod)
	if err != nil {
		return nil, fmt.Errorf("rsi: %w", err)
	}

	ann := &model.Annotations{
		LastClose:     last.Close,
		PeriodHigh:    high,
		PeriodLow:     low,
		RangePosition: pos,
		RSI:           rsi,
	}
	if len(sma) == len(bars) {
		ann.LastSMA = sma[len(sma)-1].Value
	}
	return ann, nil
}
