package chart

import "TickerDesk/internal/model"

// DefaultMetadata returns the standard chart layout.
func DefaultMetadata() model.ChartMetadata {
	return model.ChartMetadata{
		Title:        "Stock Price Candlestick Chart with Trend Line",
		XAxisTitle:   "Date",
		YAxisTitle:   "Price",
		CandleName:   "Candlestick",
		OverlayName:  "Trend Line",
		OverlayColor: "orange",
		Template:     "plotly_white",
		RangeSlider:  false,
		Margin:       model.Margin{Left: 0, Right: 0, Top: 50, Bottom: 0},
	}
}

// Merge overlays the non-zero fields of override onto base.
func Merge(base, override model.ChartMetadata) model.ChartMetadata {
	out := base
	if override.Title != "" {
		out.Title = override.Title
	}
	if override.XAxisTitle != "" {
		out.XAxisTitle = override.XAxisTitle
	}
	if override.YAxisTitle != "" {
		out.YAxisTitle = override.YAxisTitle
	}
	if override.CandleName != "" {
		out.CandleName = override.CandleName
	}
	if override.OverlayName != "" {
		out.OverlayName = override.OverlayName
	}
	if override.OverlayColor != "" {
		out.OverlayColor = override.OverlayColor
	}
	if override.Template != "" {
		out.Template = override.Template
	}
	if override.RangeSlider {
		out.RangeSlider = true
	}
	if override.Margin != (model.Margin{}) {
		out.Margin = override.Margin
	}
	return out
}

// Empty returns a renderable placeholder with no series data.
func Empty(meta model.ChartMetadata) model.ChartSpec {
	return model.ChartSpec{
		Empty:    true,
		Metadata: meta,
		Candles:  model.CandleSeries{Name: meta.CandleName, Bars: []model.PriceBar{}},
		Overlay:  model.LineSeries{Name: meta.OverlayName, Color: meta.OverlayColor, Points: []model.IndicatorPoint{}},
	}
}

// Build assembles the candlestick series and the indicator overlay.
// The overlay must be aligned with bars; a missing or misaligned overlay is
// replaced by an all-gap series so both traces always span the same dates.
// The returned spec owns copies of its inputs.
func Build(bars []model.PriceBar, overlay []model.IndicatorPoint, meta model.ChartMetadata) model.ChartSpec {
	if len(bars) == 0 {
		return Empty(meta)
	}

	candles := make([]model.PriceBar, len(bars))
	copy(candles, bars)

	points := make([]model.IndicatorPoint, len(bars))
	if aligned(bars, overlay) {
		copy(points, overlay)
	} else {
		for i, b := range bars {
			points[i] = model.IndicatorPoint{Date: b.Date}
		}
	}

	return model.ChartSpec{
		Metadata: meta,
		Candles:  model.CandleSeries{Name: meta.CandleName, Bars: candles},
		Overlay:  model.LineSeries{Name: meta.OverlayName, Color: meta.OverlayColor, Points: points},
	}
}

// WithAnnotations returns spec carrying ann.
func WithAnnotations(spec model.ChartSpec, ann *model.Annotations) model.ChartSpec {
	if spec.Empty || ann == nil {
		return spec
	}
	a := *ann
	spec.Annotations = &a
	return spec
}

func aligned(bars []model.PriceBar, overlay []model.IndicatorPoint) bool {
	if len(overlay) != len(bars) {
		return false
	}
	for i := range bars {
		if !bars[i].Date.Equal(overlay[i].Date) {
			return false
		}
	}
	return true
}
