package windowing

import (
	"fmt"
	"math"
)

// Blackman represents a Blackman window function
type Blackman struct {
	size         int
	coefficients []float64
}

// NewBlackman creates a new Blackman window
func NewBlackman(size int) *Blackman {
	b := &Blackman{size: size}
	b.generate()
	return b
}

// generate creates Blackman window coefficients:
// w[i] = 0.42 - 0.5*cos(x) + 0.08*cos(2x), x = 2*pi*i/(N-1)
func (b *Blackman) generate() {
	b.coefficients = make([]float64, b.size)

	if b.size == 1 {
		b.coefficients[0] = 1.0
		return
	}

	for i := 0; i < b.size; i++ {
		x := 2 * math.Pi * float64(i) / float64(b.size-1)
		b.coefficients[i] = 0.42 - 0.5*math.Cos(x) + 0.08*math.Cos(2*x)
	}
}

// Apply applies the window to a signal (creates new array)
func (b *Blackman) Apply(signal []float64) []float64 {
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
func (b *Blackman) ApplyInPlace(signal []float64) error {
	if len(signal) != b.size {
		return fmt.Errorf("signal length (%d) doesn't match window size (%d)", len(signal), b.size)
	}

	for i := range signal {
		signal[i] *= b.coefficients[i]
	}
	return nil
}

// Coefficients returns a copy of the window coefficients
func (b *Blackman) Coefficients() []float64 {
	coeffs := make([]float64, len(b.coefficients))
	copy(coeffs, b.coefficients)
	return coeffs
}

// Size returns the window size
func (b *Blackman) Size() int {
	return b.size
}

// Type returns the window type
func (b *Blackman) Type() Type {
	return TypeBlackman
}

// Gain returns the amplitude correction constant
func (b *Blackman) Gain() float64 {
	return 0.42
}
