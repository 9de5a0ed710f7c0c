package spectral

import (
	"errors"
	"fmt"

	"github.com/soniview/soniview/algorithms/windowing"
)

var (
	// ErrEmptyInput indicates a zero-length audio input
	ErrEmptyInput = errors.New("spectral: empty audio input")

	// ErrInvalidOptions indicates an unusable fftSize/overlap combination
	ErrInvalidOptions = errors.New("spectral: invalid options")
)

// Options configures spectrum and spectrogram generation.
//
// Zero values are filled with defaults once, at the API boundary. Overlap and
// MinFreq are exceptions: zero is a meaningful setting for both, so they are
// taken as given (construct from DefaultOptions to get the 0.75 overlap
// default). MinFreq, MaxFreq and DynamicRange do not affect generation; they
// ride along for the rendering layer.
type Options struct {
	SampleRate   int            `json:"sampleRate"`
	FFTSize      int            `json:"fftSize"`
	Overlap      float64        `json:"overlap"`
	Window       windowing.Type `json:"windowType"`
	MinFreq      float64        `json:"minFreq"`
	MaxFreq      float64        `json:"maxFreq"`
	DynamicRange float64        `json:"dynamicRange"`
	Duration     float64        `json:"duration"` // computed output, not an input
}

// DefaultOptions returns the standard analysis configuration
func DefaultOptions() Options {
	return Options{
		SampleRate:   44100,
		FFTSize:      1024,
		Overlap:      0.75,
		Window:       windowing.TypeHanning,
		MinFreq:      0,
		MaxFreq:      22050,
		DynamicRange: 50,
	}
}

// withDefaults fills unset fields and returns the effective options
func (o Options) withDefaults() Options {
	if o.SampleRate == 0 {
		o.SampleRate = 44100
	}
	if o.FFTSize == 0 {
		o.FFTSize = 1024
	}
	if o.Window == "" {
		o.Window = windowing.TypeHanning
	}
	if o.MaxFreq == 0 {
		o.MaxFreq = float64(o.SampleRate) / 2
	}
	if o.DynamicRange == 0 {
		o.DynamicRange = 50
	}
	return o
}

// Validate rejects option combinations the generators cannot work with
func (o Options) Validate() error {
	if o.FFTSize <= 0 {
		return fmt.Errorf("%w: fftSize must be positive, got %d", ErrInvalidOptions, o.FFTSize)
	}
	if o.SampleRate <= 0 {
		return fmt.Errorf("%w: sampleRate must be positive, got %d", ErrInvalidOptions, o.SampleRate)
	}
	if o.Overlap < 0 || o.Overlap >= 1 {
		return fmt.Errorf("%w: overlap must be in [0,1), got %g", ErrInvalidOptions, o.Overlap)
	}
	if o.hopSize() < 1 {
		return fmt.Errorf("%w: fftSize %d with overlap %g yields hop size < 1", ErrInvalidOptions, o.FFTSize, o.Overlap)
	}
	return nil
}

// hopSize is the sample advance between consecutive STFT frames
func (o Options) hopSize() int {
	return int(float64(o.FFTSize) * (1 - o.Overlap))
}
