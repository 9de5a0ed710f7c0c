package filters

import (
	"github.com/soniview/soniview/logging"
)

// IIRFilter applies a fixed-coefficient digital filter in Direct Form I:
//
//	y[n] = (sum_k b[k]*x[n-k] - sum_k>=1 a[k]*y[n-k]) / a[0]
//
// The filter starts from zero initial state, so the output carries the usual
// transient settling period at the beginning. The recursion is strictly
// sequential; each output depends on previously computed outputs.
type IIRFilter struct {
	b      []float64
	a      []float64
	a0     float64
	logger logging.Logger
}

// NewIIRFilter creates a filter from a coefficient set
func NewIIRFilter(coeffs CoefficientSet) (*IIRFilter, error) {
	if err := coeffs.Validate(); err != nil {
		return nil, err
	}

	logger := logging.WithFields(logging.Fields{
		"component": "iir_filter",
	})

	a0 := 1.0
	if len(coeffs.A) > 0 && coeffs.A[0] != 0 {
		a0 = coeffs.A[0]
	} else {
		logger.Warn("a[0] coefficient is zero or absent, normalizing with 1", logging.Fields{
			"a_len": len(coeffs.A),
		})
	}

	b := make([]float64, len(coeffs.B))
	copy(b, coeffs.B)
	a := make([]float64, len(coeffs.A))
	copy(a, coeffs.A)

	return &IIRFilter{
		b:      b,
		a:      a,
		a0:     a0,
		logger: logger,
	}, nil
}

// ProcessBuffer filters an entire buffer, producing a new buffer of the same
// length. The input is never modified.
func (f *IIRFilter) ProcessBuffer(input []float64) []float64 {
	output := make([]float64, len(input))

	for n := range input {
		feedforward := 0.0
		for k := 0; k < len(f.b) && k <= n; k++ {
			feedforward += f.b[k] * input[n-k]
		}

		feedback := 0.0
		for k := 1; k < len(f.a) && k <= n; k++ {
			feedback += f.a[k] * output[n-k]
		}

		output[n] = (feedforward - feedback) / f.a0
	}

	return output
}

// Order returns the feedforward and feedback coefficient counts
func (f *IIRFilter) Order() (m, n int) {
	return len(f.b), len(f.a)
}

// ApplyIIR filters samples with the given coefficient sequences. It is a
// convenience wrapper over NewIIRFilter + ProcessBuffer; an unusable
// coefficient set returns the error from validation.
func ApplyIIR(samples, b, a []float64) ([]float64, error) {
	filter, err := NewIIRFilter(CoefficientSet{B: b, A: a})
	if err != nil {
		return nil, err
	}
	return filter.ProcessBuffer(samples), nil
}
