package floatutils

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r1"
)

func TestClip(t *testing.T) {
	tests := []struct {
		in, min, max, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-3, 0, 1, 0},
		{7, 0, 3, 3},
		{math.Inf(1), 0, 3, 3},
		{math.Inf(-1), 0, 3, 0},
		{math.NaN(), 0, 3, 0},
	}

	for _, test := range tests {
		if got := Clip(test.in, test.min, test.max); got != test.want {
			t.Errorf("clip(%v, %v, %v): expected %v, got %v", test.in,
				test.min, test.max, test.want, got)
		}
	}
}

func TestNormalize(t *testing.T) {
	interval := r1.Interval{Min: -10, Max: 10}
	if got := Normalize(-10, interval); got != 0 {
		t.Errorf("normalize: expected 0, got %v", got)
	}
	if got := Normalize(10, interval); got != 1 {
		t.Errorf("normalize: expected 1, got %v", got)
	}
	if got := Normalize(0, interval); got != 0.5 {
		t.Errorf("normalize: expected 0.5, got %v", got)
	}
}
