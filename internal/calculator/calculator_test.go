package calculator

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestRollingMean_PartialWindows(t *testing.T) {
	got := RollingMean([]float64{3, 6, 9, 12}, 3)
	want := []float64{3, 4.5, 6, 9}
	for i := range want {
		if !almostEqual(got[i], want[i]) {
			t.Errorf("index %d: expected %f, got %f", i, want[i], got[i])
		}
	}
}

func TestRollingStd_HeadIsZero(t *testing.T) {
	got := RollingStd([]float64{1, 3, 5}, 3)
	if got[0] != 0 {
		t.Errorf("single element window should be 0, got %f", got[0])
	}
	if !almostEqual(got[1], math.Sqrt(2)) {
		t.Errorf("expected sqrt(2), got %f", got[1])
	}
	if !almostEqual(got[2], 2) {
		t.Errorf("expected 2, got %f", got[2])
	}
}

func TestWeightedMean_FavoursRecent(t *testing.T) {
	// weights 1, 1.5, 2 -> (1*1 + 2*1.5 + 3*2) / 4.5
	got := WeightedMean([]float64{1, 2, 3})
	if !almostEqual(got, 10.0/4.5) {
		t.Errorf("expected %f, got %f", 10.0/4.5, got)
	}
	if WeightedMean(nil) != 0 {
		t.Error("empty input should give 0")
	}
	if WeightedMean([]float64{7}) != 7 {
		t.Error("single value should be returned as is")
	}
}

func TestTailStdDev_Population(t *testing.T) {
	values := []float64{100, 2, 4, 4, 4, 5, 5, 7, 9}
	// last 8 values have population std-dev 2
	if got := TailStdDev(values, 8); !almostEqual(got, 2) {
		t.Errorf("expected 2, got %f", got)
	}
	if got := TailStdDev(nil, 10); got != 0 {
		t.Errorf("expected 0 for empty input, got %f", got)
	}
}

func TestPctChangeAndLag(t *testing.T) {
	pct := PctChange([]float64{2, 3, 0, 5})
	want := []float64{0, 0.5, -1, 0}
	for i := range want {
		if !almostEqual(pct[i], want[i]) {
			t.Errorf("pct index %d: expected %f, got %f", i, want[i], pct[i])
		}
	}
	lag := Lag([]float64{1, 2, 3, 4}, 2)
	wantLag := []float64{0, 0, 1, 2}
	for i := range wantLag {
		if lag[i] != wantLag[i] {
			t.Errorf("lag index %d: expected %f, got %f", i, wantLag[i], lag[i])
		}
	}
}

func TestExtrapolateNext(t *testing.T) {
	got, err := ExtrapolateNext([]float64{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(got, 5) {
		t.Errorf("expected 5, got %f", got)
	}
	if _, err := ExtrapolateNext([]float64{1}); err == nil {
		t.Error("expected error for a single point")
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		in     float64
		places int
		want   float64
	}{
		{1.234, 2, 1.23},
		{1.235, 1, 1.2},
		{72.46, 1, 72.5},
		{-1.005, 0, -1},
	}
	for _, tt := range tests {
		if got := Round(tt.in, tt.places); !almostEqual(got, tt.want) {
			t.Errorf("Round(%v, %d): expected %v, got %v", tt.in, tt.places, tt.want, got)
		}
	}
}
