package windowing

import (
	"fmt"
	"math"
)

// Bartlett represents a Bartlett (triangular) window function
type Bartlett struct {
	size         int
	coefficients []float64
}

// NewBartlett creates a new Bartlett window
func NewBartlett(size int) *Bartlett {
	b := &Bartlett{size: size}
	b.generate()
	return b
}

// generate creates Bartlett window coefficients:
// w[i] = (2/(N-1)) * ((N-1)/2 - |i - (N-1)/2|)
func (b *Bartlett) generate() {
	b.coefficients = make([]float64, b.size)

	if b.size == 1 {
		b.coefficients[0] = 1.0
		return
	}

	half := float64(b.size-1) / 2.0
	for i := 0; i < b.size; i++ {
		b.coefficients[i] = (2.0 / float64(b.size-1)) * (half - math.Abs(float64(i)-half))
	}
}

// Apply applies the window to a signal (creates new array)
func (b *Bartlett) Apply(signal []float64) []float64 {
	if len(signal) != b.size {
		return nil
	}

	windowed := make([]float64, b.size)
	for i := range signal {
		windowed[i] = signal[i] * b.coefficients[i]
	}
	return windowed
}

// ApplyInPlace applies the window to a signal in-place
func (b *Bartlett) ApplyInPlace(signal []float64) error {
	if len(signal) != b.size {
		return fmt.Errorf("signal length (%d) doesn't match window size (%d)", len(signal), b.size)
	}

	for i := range signal {
		signal[i] *= b.coefficients[i]
	}
	return nil
}

// Coefficients returns a copy of the window coefficients
func (b *Bartlett) Coefficients() []float64 {
	coeffs := make([]float64, len(b.coefficients))
	copy(coeffs, b.coefficients)
	return coeffs
}

// Size returns the window size
func (b *Bartlett) Size() int {
	return b.size
}

// Type returns the window type
func (b *Bartlett) Type() Type {
	return TypeBartlett
}

// Gain returns the amplitude correction constant
func (b *Bartlett) Gain() float64 {
	return 0.5
}
