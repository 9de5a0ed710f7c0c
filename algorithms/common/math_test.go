package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextPowerOfTwo(t *testing.T) {
	cases := map[int]int{
		0:    1,
		1:    1,
		2:    2,
		3:    4,
		255:  256,
		256:  256,
		257:  512,
		1000: 1024,
	}

	for in, want := range cases {
		assert.Equal(t, want, NextPowerOfTwo(in), "NextPowerOfTwo(%d)", in)
	}
}

func TestIsPowerOfTwo(t *testing.T) {
	assert.True(t, IsPowerOfTwo(1))
	assert.True(t, IsPowerOfTwo(1024))
	assert.False(t, IsPowerOfTwo(0))
	assert.False(t, IsPowerOfTwo(-2))
	assert.False(t, IsPowerOfTwo(768))
}

func TestMaxAbsPreservesSign(t *testing.T) {
	assert.Equal(t, -0.9, MaxAbs([]float64{0.1, -0.9, 0.5}))
	assert.Equal(t, 0.7, MaxAbs([]float64{0.7, -0.2}))
	assert.Equal(t, 0.0, MaxAbs(nil))
}

func TestDecimateMaxAbs(t *testing.T) {
	data := []float64{0.1, -0.8, 0.3, 0.2, 0.9, -0.1, 0.4}

	out := DecimateMaxAbs(data, 3)

	// Blocks: [0.1 -0.8 0.3] [0.2 0.9 -0.1] [0.4]
	assert.Equal(t, []float64{-0.8, 0.9, 0.4}, out)
}

func TestDecimateMaxAbsFactorOne(t *testing.T) {
	data := []float64{1, 2, 3}

	out := DecimateMaxAbs(data, 1)
	assert.Equal(t, data, out)

	// Factor 1 still returns a copy
	out[0] = 99
	assert.Equal(t, 1.0, data[0])
}

func TestZeroPad(t *testing.T) {
	padded := ZeroPad([]float64{1, 2}, 4)
	assert.Equal(t, []float64{1, 2, 0, 0}, padded)

	same := ZeroPad([]float64{1, 2, 3}, 2)
	assert.Equal(t, []float64{1, 2, 3}, same)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.5, Clamp(0.5, 0, 1))
	assert.Equal(t, 0.0, Clamp(-2, 0, 1))
	assert.Equal(t, 1.0, Clamp(7, 0, 1))
}

func TestStats(t *testing.T) {
	data := []float64{1, 2, 3, 4}

	assert.InDelta(t, 2.5, Mean(data), 1e-12)
	assert.InDelta(t, 4.0, Max(data), 1e-12)
	assert.InDelta(t, 1.0, Min(data), 1e-12)
	assert.InDelta(t, 2.7386127875258306, RMS(data), 1e-12)

	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 0.0, RMS(nil))
}
