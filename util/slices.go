package util

import "math"

// StrictlyIncreasing reports whether xs has no ties and no descents.
func StrictlyIncreasing(xs []float64) bool {
	for i := 1; i < len(xs); i++ {
		if !(xs[i] > xs[i-1]) {
			return false
		}
	}
	return true
}

func Clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(x, hi))
}

// CopyMatrix returns a deep copy of a row-major matrix.
func CopyMatrix(m [][]float64) [][]float64 {
	out := make([][]float64, len(m))
	for i := range m {
		out[i] = append([]float64(nil), m[i]...)
	}
	return out
}
