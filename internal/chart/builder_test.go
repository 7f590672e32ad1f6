package chart

import (
	"testing"
	"time"

	"github.com/guregu/null/v6"

	"TickerDesk/internal/model"
)

func testBars(n int) []model.PriceBar {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.PriceBar, n)
	for i := range bars {
		p := 40 + float64(i)
		bars[i] = model.PriceBar{Date: start.AddDate(0, 0, i), Open: p, High: p + 1, Low: p - 1, Close: p + 0.5}
	}
	return bars
}

func TestBuild_EmptyBarsReturnsPlaceholder(t *testing.T) {
	spec := Build(nil, nil, DefaultMetadata())
	if !spec.Empty {
		t.Error("expected Empty spec")
	}
	if spec.Candles.Bars == nil || len(spec.Candles.Bars) != 0 {
		t.Errorf("Candles.Bars = %v, want empty non-nil slice", spec.Candles.Bars)
	}
	if spec.Overlay.Points == nil || len(spec.Overlay.Points) != 0 {
		t.Errorf("Overlay.Points = %v, want empty non-nil slice", spec.Overlay.Points)
	}
	if spec.Metadata.Title == "" {
		t.Error("placeholder should keep metadata")
	}
}

func TestBuild_AlignedOverlay(t *testing.T) {
	bars := testBars(4)
	overlay := make([]model.IndicatorPoint, len(bars))
	for i, b := range bars {
		overlay[i] = model.IndicatorPoint{Date: b.Date}
		if i >= 2 {
			overlay[i].Value = null.FloatFrom(float64(i))
		}
	}

	spec := Build(bars, overlay, DefaultMetadata())
	if spec.Empty {
		t.Fatal("unexpected Empty spec")
	}
	if len(spec.Candles.Bars) != 4 || len(spec.Overlay.Points) != 4 {
		t.Fatalf("series lengths = %d/%d, want 4/4", len(spec.Candles.Bars), len(spec.Overlay.Points))
	}
	for i := range bars {
		if !spec.Overlay.Points[i].Date.Equal(spec.Candles.Bars[i].Date) {
			t.Errorf("point %d not aligned with candle", i)
		}
	}
	if spec.Overlay.Points[1].Value.Valid {
		t.Error("leading gap should be preserved")
	}
	if v := spec.Overlay.Points[3].Value; !v.Valid || v.Float64 != 3 {
		t.Errorf("point 3 = %+v, want 3", v)
	}
	if spec.Overlay.Name != "Trend Line" || spec.Overlay.Color != "orange" {
		t.Errorf("overlay style = %q/%q", spec.Overlay.Name, spec.Overlay.Color)
	}

	bars[0].Close = -1
	if spec.Candles.Bars[0].Close == -1 {
		t.Error("spec shares memory with caller's bars")
	}
}

func TestBuild_MisalignedOverlayBecomesGaps(t *testing.T) {
	bars := testBars(3)
	overlay := []model.IndicatorPoint{{Date: bars[0].Date, Value: null.FloatFrom(1)}}

	spec := Build(bars, overlay, DefaultMetadata())
	if len(spec.Overlay.Points) != len(bars) {
		t.Fatalf("overlay len = %d, want %d", len(spec.Overlay.Points), len(bars))
	}
	for i, p := range spec.Overlay.Points {
		if p.Value.Valid {
			t.Errorf("point %d should be a gap", i)
		}
		if !p.Date.Equal(bars[i].Date) {
			t.Errorf("point %d date mismatch", i)
		}
	}
}

func TestMerge(t *testing.T) {
	base := DefaultMetadata()
	got := Merge(base, model.ChartMetadata{Title: "WEG", OverlayColor: "blue"})
	if got.Title != "WEG" || got.OverlayColor != "blue" {
		t.Errorf("overrides not applied: %+v", got)
	}
	if got.XAxisTitle != "Date" || got.YAxisTitle != "Price" || got.Margin.Top != 50 {
		t.Errorf("defaults lost: %+v", got)
	}

	got = Merge(base, model.ChartMetadata{Margin: model.Margin{Top: 10}})
	if got.Margin.Top != 10 {
		t.Errorf("Margin.Top = %d, want 10", got.Margin.Top)
	}
}

func TestWithAnnotations(t *testing.T) {
	ann := &model.Annotations{LastClose: 10}

	empty := WithAnnotations(Empty(DefaultMetadata()), ann)
	if empty.Annotations != nil {
		t.Error("placeholder should not carry annotations")
	}

	spec := WithAnnotations(Build(testBars(2), nil, DefaultMetadata()), ann)
	if spec.Annotations == nil || spec.Annotations.LastClose != 10 {
		t.Fatalf("Annotations = %+v", spec.Annotations)
	}
	ann.LastClose = 99
	if spec.Annotations.LastClose != 10 {
		t.Error("spec shares annotations with caller")
	}
}
