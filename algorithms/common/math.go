package common

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Shared numeric helpers used across the DSP packages, backed by gonum where
// it has a robust implementation.

// Mean calculates the arithmetic mean of a slice using gonum
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// Max returns the maximum value of a slice using gonum
func Max(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return floats.Max(data)
}

// Min returns the minimum value of a slice using gonum
func Min(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return floats.Min(data)
}

// MaxAbs returns the element with the largest absolute value, preserving sign
func MaxAbs(data []float64) float64 {
	peak := 0.0
	for _, v := range data {
		if math.Abs(v) > math.Abs(peak) {
			peak = v
		}
	}
	return peak
}

// RMS calculates root mean square
func RMS(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}

	sumSquares := 0.0
	for _, v := range data {
		sumSquares += v * v
	}

	return math.Sqrt(sumSquares / float64(len(data)))
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// IsPowerOfTwo reports whether n is a positive power of two
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// NextPowerOfTwo returns the smallest power of two >= n
func NextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// DecimateMaxAbs downsamples data by keeping the peak (largest absolute
// value, sign preserved) of each block of factor samples. The final partial
// block, if any, contributes its own peak.
func DecimateMaxAbs(data []float64, factor int) []float64 {
	if factor <= 1 || len(data) == 0 {
		out := make([]float64, len(data))
		copy(out, data)
		return out
	}

	out := make([]float64, 0, (len(data)+factor-1)/factor)
	for start := 0; start < len(data); start += factor {
		end := start + factor
		if end > len(data) {
			end = len(data)
		}
		out = append(out, MaxAbs(data[start:end]))
	}
	return out
}

// ZeroPad returns data extended with zeros to the given length. Data longer
// than the target is copied and returned at its original length.
func ZeroPad(data []float64, length int) []float64 {
	if length <= len(data) {
		out := make([]float64, len(data))
		copy(out, data)
		return out
	}
	out := make([]float64, length)
	copy(out, data)
	return out
}
