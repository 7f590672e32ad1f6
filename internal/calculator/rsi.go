package calculator

// RSI computes the Wilder-smoothed relative strength index of closes.
// Requires at least period+1 values; returns 50 when data is insufficient.
func RSI(closes []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, ErrInvalidWindow
	}
	if len(closes) < period+1 {
		return 50.0, nil
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		gain, loss := splitChange(closes[i] - closes[i-1])
		avgGain += gain
		avgLoss += loss
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	for i := period + 1; i < len(closes); i++ {
		gain, loss := splitChange(closes[i] - closes[i-1])
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	if avgLoss == 0 {
		if avgGain == 0 {
			return 50.0, nil
		}
		return 100.0, nil
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs), nil
}

func splitChange(change float64) (gain, loss float64) {
	if change > 0 {
		return change, 0
	}
	return 0, -change
}
