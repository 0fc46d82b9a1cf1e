package chart

import (
	"bytes"
	"errors"
	"image/png"
	"testing"
)

func costChart() Chart {
	return Chart{
		Title:  "Затраты",
		XLabel: "N, шт.",
		YLabel: "руб.",
		Series: []Series{
			{Name: "Постоянные", X: []float64{0, 100, 200}, Y: []float64{50, 50, 50}, Dashed: true},
			{Name: "Все", X: []float64{0, 100, 200}, Y: []float64{50, 150, 250}},
		},
		Marks: []Mark{{Name: "N кр", X: 120}},
	}
}

func TestPNG_Signature(t *testing.T) {
	data, err := costChart().PNG(DefaultWidth, DefaultHeight)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")) {
		t.Fatalf("expected PNG signature, got %q", data[:min(8, len(data))])
	}

	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width <= cfg.Height {
		t.Errorf("expected a landscape picture, got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		chart Chart
	}{
		{"no series", Chart{}},
		{"length mismatch", Chart{Series: []Series{{Name: "a", X: []float64{1, 2}, Y: []float64{1}}}}},
		{"empty series", Chart{Series: []Series{{Name: "a"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.chart.Validate(); err == nil {
				t.Fatal("expected an error")
			}
			if _, err := tt.chart.PNG(DefaultWidth, DefaultHeight); err == nil {
				t.Fatal("expected PNG to refuse an invalid chart")
			}
		})
	}
	if err := (Chart{}).Validate(); !errors.Is(err, ErrNoSeries) {
		t.Errorf("expected ErrNoSeries, got %v", err)
	}
}
