package format

import (
	"math"
	"testing"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		v      float64
		places int
		want   string
	}{
		{0, 2, "0.00"},
		{12.5, 0, "12"},
		{13.5, 0, "14"},
		{999.999, 2, "1,000.00"},
		{1234567.891, 2, "1,234,567.89"},
		{-1234.5, 1, "-1,234.5"},
		{45000, 0, "45,000"},
		{-0.001, 2, "0.00"},
	}
	for _, tt := range tests {
		if got := Number(tt.v, tt.places); got != tt.want {
			t.Errorf("Number(%v, %d): expected %q, got %q", tt.v, tt.places, tt.want, got)
		}
	}
}

func TestRound_HalfEven(t *testing.T) {
	tests := []struct {
		v      float64
		places int
		want   float64
	}{
		{0.125, 2, 0.12},
		{0.135, 2, 0.14},
		{2.5, 0, 2},
		{3.5, 0, 4},
		{1234.5678, 2, 1234.57},
		{2.675, 2, 2.67},
		{1.115, 2, 1.11},
		{0.5, 0, 0},
		{-2.5, 0, -2},
	}
	for _, tt := range tests {
		if got := Round(tt.v, tt.places); got != tt.want {
			t.Errorf("Round(%v, %d): expected %v, got %v", tt.v, tt.places, tt.want, got)
		}
	}
}

func TestNumberAndPlain_BinaryValue(t *testing.T) {
	for _, tt := range []struct {
		v    float64
		want string
	}{
		{2.675, "2.67"},
		{1.115, "1.11"},
		{1.125, "1.12"},
		{0.375, "0.38"},
	} {
		if got := Plain(tt.v, 2); got != tt.want {
			t.Errorf("Plain(%v, 2): expected %q, got %q", tt.v, tt.want, got)
		}
		if got := Number(tt.v, 2); got != tt.want {
			t.Errorf("Number(%v, 2): expected %q, got %q", tt.v, tt.want, got)
		}
	}
	if got := Plain(math.NaN(), 2); got != "NaN" {
		t.Errorf("expected NaN, got %q", got)
	}
}

func TestPercentAndPlain(t *testing.T) {
	if got := Percent(0.051, 1); got != "5.1" {
		t.Errorf("expected %q, got %q", "5.1", got)
	}
	if got := Plain(12345.678, 2); got != "12345.68" {
		t.Errorf("expected %q, got %q", "12345.68", got)
	}
	if got := Thousands(1500000, 0); got != "1,500" {
		t.Errorf("expected %q, got %q", "1,500", got)
	}
}
