package spectral

import (
	"math"
	"math/cmplx"

	"github.com/soniview/soniview/algorithms/windowing"
)

// Spectrum holds a single-frame linear magnitude spectrum. Magnitude and
// Frequencies have length FFTSize/2 (the non-negative-frequency half).
type Spectrum struct {
	Magnitude   []float64      `json:"magnitude"`
	Frequencies []float64      `json:"frequencies"`
	SampleRate  int            `json:"sampleRate"`
	FFTSize     int            `json:"fftSize"`
	Window      windowing.Type `json:"windowType"`
}

// SpectrumAnalyzer computes windowed single-frame spectra.
//
// No window-gain correction is applied here; correction happens wherever
// magnitudes are consumed for display.
type SpectrumAnalyzer struct {
	fft *FFT
}

// NewSpectrumAnalyzer creates a new single-frame spectrum calculator
func NewSpectrumAnalyzer() *SpectrumAnalyzer {
	return &SpectrumAnalyzer{
		fft: NewFFT(),
	}
}

// Compute windows one PCM frame and returns its linear magnitude spectrum
// with the matching frequency axis. Frames shorter than fftSize are
// zero-padded, longer frames truncated.
func (s *SpectrumAnalyzer) Compute(frame []float64, opts Options) (*Spectrum, error) {
	if len(frame) == 0 {
		return nil, ErrEmptyInput
	}

	opts = opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	window := windowing.New(opts.FFTSize, opts.Window)
	return s.computeWindowed(frame, window, opts), nil
}

// computeWindowed runs the windowed FFT with a caller-supplied window table,
// so the STFT loop can reuse one table across frames.
func (s *SpectrumAnalyzer) computeWindowed(frame []float64, window windowing.Window, opts Options) *Spectrum {
	padded := make([]float64, opts.FFTSize)
	copy(padded, frame)

	// The window is always built at opts.FFTSize, so this cannot fail
	_ = window.ApplyInPlace(padded)

	result := s.fft.Compute(padded)

	bins := opts.FFTSize / 2
	magnitude := make([]float64, bins)
	frequencies := make([]float64, bins)
	binWidth := float64(opts.SampleRate) / float64(opts.FFTSize)

	for k := 0; k < bins; k++ {
		mag := cmplx.Abs(result[k])
		if math.IsNaN(mag) || math.IsInf(mag, 0) {
			mag = 0
		}
		magnitude[k] = mag
		frequencies[k] = float64(k) * binWidth
	}

	return &Spectrum{
		Magnitude:   magnitude,
		Frequencies: frequencies,
		SampleRate:  opts.SampleRate,
		FFTSize:     opts.FFTSize,
		Window:      opts.Window,
	}
}
