package model

import "github.com/guregu/null/v6"

// Margin is the plot margin in pixels.
type Margin struct {
	Left   int `json:"l" yaml:"left"`
	Right  int `json:"r" yaml:"right"`
	Top    int `json:"t" yaml:"top"`
	Bottom int `json:"b" yaml:"bottom"`
}

// ChartMetadata carries display settings for a chart.
type ChartMetadata struct {
	Title        string `json:"title" yaml:"title"`
	XAxisTitle   string `json:"xaxis_title" yaml:"xaxis_title"`
	YAxisTitle   string `json:"yaxis_title" yaml:"yaxis_title"`
	CandleName   string `json:"candle_name" yaml:"candle_name"`
	OverlayName  string `json:"overlay_name" yaml:"overlay_name"`
	OverlayColor string `json:"overlay_color" yaml:"overlay_color"`
	Template     string `json:"template" yaml:"template"`
	RangeSlider  bool   `json:"rangeslider_visible" yaml:"rangeslider_visible"`
	Margin       Margin `json:"margin" yaml:"margin"`
}

// CandleSeries is the OHLC trace of a chart.
type CandleSeries struct {
	Name string     `json:"name"`
	Bars []PriceBar `json:"bars"`
}

// LineSeries is an overlay trace drawn on top of the candles.
type LineSeries struct {
	Name   string           `json:"name"`
	Color  string           `json:"color"`
	Points []IndicatorPoint `json:"points"`
}

// Annotations summarize the plotted period.
type Annotations struct {
	LastClose     float64    `json:"last_close"`
	LastSMA       null.Float `json:"last_sma"`
	PeriodHigh    float64    `json:"period_high"`
	PeriodLow     float64    `json:"period_low"`
	RangePosition float64    `json:"range_position"` // 0.0 ~ 1.0
	RSI           float64    `json:"rsi"`
}

// ChartSpec is a renderer-agnostic candlestick chart with an indicator overlay.
// An empty spec has no series data but is still renderable.
type ChartSpec struct {
	Empty       bool          `json:"empty"`
	Metadata    ChartMetadata `json:"metadata"`
	Candles     CandleSeries  `json:"candles"`
	Overlay     LineSeries    `json:"overlay"`
	Annotations *Annotations  `json:"annotations,omitempty"`
}
