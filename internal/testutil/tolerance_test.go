package testutil

import (
	"math"
	"testing"
)

func TestRequireSliceNearlyEqual(t *testing.T) {
	a := []float64{1.0, 2.0, 3.0}
	b := []float64{1.0, 2.0 + 1e-12, 3.0}

	RequireSliceNearlyEqual(t, a, b, 1e-9)
}

func TestRequireFinite(t *testing.T) {
	RequireFinite(t, []float64{0, -1, math.Pi})
}
