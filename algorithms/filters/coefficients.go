package filters

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrNoCoefficients indicates an empty feedforward coefficient set
var ErrNoCoefficients = errors.New("filters: coefficient set has no feedforward (b) coefficients")

// CoefficientSet holds the transfer function coefficients for an IIR filter.
// B is the feedforward (numerator) sequence, A the feedback (denominator)
// sequence. A[0] normalizes the recursion; if it is zero or A is empty, the
// filter treats it as 1 and logs a diagnostic.
type CoefficientSet struct {
	B []float64 `yaml:"b" json:"b"`
	A []float64 `yaml:"a" json:"a"`
}

// Validate checks that the set can drive a filter
func (c CoefficientSet) Validate() error {
	if len(c.B) == 0 {
		return ErrNoCoefficients
	}
	return nil
}

// ParseCoefficients decodes a YAML coefficient document of the form
// {b: [...], a: [...]}
func ParseCoefficients(data []byte) (CoefficientSet, error) {
	var set CoefficientSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return CoefficientSet{}, fmt.Errorf("parsing coefficient set: %w", err)
	}
	if err := set.Validate(); err != nil {
		return CoefficientSet{}, err
	}
	return set, nil
}

// LoadCoefficients reads a YAML coefficient file from disk
func LoadCoefficients(path string) (CoefficientSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return CoefficientSet{}, fmt.Errorf("reading coefficient file: %w", err)
	}
	return ParseCoefficients(data)
}
