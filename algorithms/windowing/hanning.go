package windowing

import (
	"fmt"
	"math"
)

// Hanning represents a Hann (raised cosine) window function
type Hanning struct {
	size         int
	coefficients []float64
}

// NewHanning creates a new Hanning window
func NewHanning(size int) *Hanning {
	h := &Hanning{size: size}
	h.generate()
	return h
}

// generate creates Hanning window coefficients:
// w[i] = 0.5 * (1 - cos(2*pi*i/(N-1)))
func (h *Hanning) generate() {
	h.coefficients = make([]float64, h.size)

	if h.size == 1 {
		h.coefficients[0] = 1.0
		return
	}

	for i := 0; i < h.size; i++ {
		h.coefficients[i] = 0.5 * (1.0 - math.Cos(2*math.Pi*float64(i)/float64(h.size-1)))
	}
}

// Apply applies the window to a signal (creates new array)
func (h *Hanning) Apply(signal []float64) []float64 {
	if len(signal) != h.size {
		return nil
	}

	windowed := make([]float64, h.size)
	for i := range signal {
		windowed[i] = signal[i] * h.coefficients[i]
	}
	return windowed
}

// ApplyInPlace applies the window to a signal in-place
func (h *Hanning) ApplyInPlace(signal []float64) error {
	if len(signal) != h.size {
		return fmt.Errorf("signal length (%d) doesn't match window size (%d)", len(signal), h.size)
	}

	for i := range signal {
		signal[i] *= h.coefficients[i]
	}
	return nil
}

// Coefficients returns a copy of the window coefficients
func (h *Hanning) Coefficients() []float64 {
	coeffs := make([]float64, len(h.coefficients))
	copy(coeffs, h.coefficients)
	return coeffs
}

// Size returns the window size
func (h *Hanning) Size() int {
	return h.size
}

// Type returns the window type
func (h *Hanning) Type() Type {
	return TypeHanning
}

// Gain returns the amplitude correction constant
func (h *Hanning) Gain() float64 {
	return 0.5
}
