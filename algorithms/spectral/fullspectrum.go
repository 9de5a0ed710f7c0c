package spectral

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/soniview/soniview/algorithms/common"
	"github.com/soniview/soniview/algorithms/windowing"
	"github.com/soniview/soniview/logging"
)

const (
	// maxFullSpectrumSamples caps the FFT size for whole-recording analysis.
	// Longer signals are peak-decimated down to this bound first.
	maxFullSpectrumSamples = 1 << 20

	// maxPlotPoints bounds the spectrum handed to the plotting layer
	maxPlotPoints = 2048
)

// FullSpectrum is a single-shot spectrum over an entire recording, already
// window-gain corrected and downsampled for plotting.
type FullSpectrum struct {
	Magnitude        []float64 `json:"magnitude"`
	Frequencies      []float64 `json:"frequencies"`
	SampleRate       float64   `json:"sampleRate"` // effective rate after decimation
	DecimationFactor int       `json:"decimationFactor"`
}

// FullSpectrumAnalyzer computes the auxiliary single-shot analyses: the
// full-recording spectrum and time-localized slice spectra. Unlike the
// per-frame STFT path, both outputs are corrected for window attenuation
// because they are compared directly across window types on screen.
type FullSpectrumAnalyzer struct {
	spectrum *SpectrumAnalyzer
	fft      *FFT
	logger   logging.Logger
}

// NewFullSpectrumAnalyzer creates a new full-spectrum analyzer
func NewFullSpectrumAnalyzer() *FullSpectrumAnalyzer {
	return &FullSpectrumAnalyzer{
		spectrum: NewSpectrumAnalyzer(),
		fft:      NewFFT(),
		logger: logging.WithFields(logging.Fields{
			"component": "full_spectrum_analyzer",
		}),
	}
}

// Compute runs one FFT over the whole signal.
//
// Signals above the sample cap are decimated by keeping the peak of each
// block, which preserves transients and lowers the effective sample rate by
// the same factor. The buffer is then zero-padded to a power of two, windowed,
// transformed, gain-corrected, and finally reduced to at most maxPlotPoints
// output points by max-magnitude binning.
func (a *FullSpectrumAnalyzer) Compute(samples []float64, opts Options) (*FullSpectrum, error) {
	if len(samples) == 0 {
		return nil, ErrEmptyInput
	}

	opts = opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	factor := 1
	input := samples
	if len(samples) > maxFullSpectrumSamples {
		factor = (len(samples) + maxFullSpectrumSamples - 1) / maxFullSpectrumSamples
		input = common.DecimateMaxAbs(samples, factor)

		a.logger.Debug("decimated signal for full-spectrum analysis", logging.Fields{
			"original_samples": len(samples),
			"decimated":        len(input),
			"factor":           factor,
		})
	}
	effectiveRate := float64(opts.SampleRate) / float64(factor)

	fftSize := common.NextPowerOfTwo(len(input))
	padded := common.ZeroPad(input, fftSize)

	window := windowing.New(fftSize, opts.Window)
	if err := window.ApplyInPlace(padded); err != nil {
		return nil, err
	}

	result := a.fft.Compute(padded)

	bins := fftSize / 2
	correction := 1.0 / window.Gain()
	binWidth := effectiveRate / float64(fftSize)

	magnitude := make([]float64, bins)
	frequencies := make([]float64, bins)
	for k := 0; k < bins; k++ {
		mag := cmplx.Abs(result[k]) * correction
		if math.IsNaN(mag) || math.IsInf(mag, 0) {
			mag = 0
		}
		magnitude[k] = mag
		frequencies[k] = float64(k) * binWidth
	}

	magnitude, frequencies = downsampleSpectrum(magnitude, frequencies, maxPlotPoints)

	return &FullSpectrum{
		Magnitude:        magnitude,
		Frequencies:      frequencies,
		SampleRate:       effectiveRate,
		DecimationFactor: factor,
	}, nil
}

// TimeSlice computes the gain-corrected spectrum of the PCM segment backing
// one frame of an existing spectrogram result. The segment starts at
// frameIndex * floor(totalSamples/frameCount) and spans fftSize samples
// (zero-padded past the end of the signal).
func (a *FullSpectrumAnalyzer) TimeSlice(samples []float64, result *SpectrogramResult, frameIndex int) (*Spectrum, error) {
	if len(samples) == 0 {
		return nil, ErrEmptyInput
	}
	if result == nil || len(result.Spectrogram) == 0 {
		return nil, fmt.Errorf("%w: spectrogram result has no frames", ErrInvalidOptions)
	}

	frameCount := len(result.Spectrogram)
	if frameIndex < 0 || frameIndex >= frameCount {
		return nil, fmt.Errorf("%w: frame index %d out of range [0,%d)", ErrInvalidOptions, frameIndex, frameCount)
	}

	opts := result.Options
	samplesPerFrame := len(samples) / frameCount
	start := frameIndex * samplesPerFrame
	if start >= len(samples) {
		start = len(samples) - 1
	}

	end := start + opts.FFTSize
	if end > len(samples) {
		end = len(samples)
	}

	spectrum, err := a.spectrum.Compute(samples[start:end], opts)
	if err != nil {
		return nil, err
	}

	correction := 1.0 / windowing.Gain(opts.Window)
	for k := range spectrum.Magnitude {
		spectrum.Magnitude[k] *= correction
	}

	return spectrum, nil
}

// downsampleSpectrum reduces a spectrum to at most maxPoints by keeping the
// strongest bin of each bucket, so narrow peaks survive plotting.
func downsampleSpectrum(magnitude, frequencies []float64, maxPoints int) ([]float64, []float64) {
	if len(magnitude) <= maxPoints {
		return magnitude, frequencies
	}

	bucket := (len(magnitude) + maxPoints - 1) / maxPoints
	outMag := make([]float64, 0, maxPoints)
	outFreq := make([]float64, 0, maxPoints)

	for start := 0; start < len(magnitude); start += bucket {
		end := start + bucket
		if end > len(magnitude) {
			end = len(magnitude)
		}

		maxIdx := start
		for i := start + 1; i < end; i++ {
			if magnitude[i] > magnitude[maxIdx] {
				maxIdx = i
			}
		}

		outMag = append(outMag, magnitude[maxIdx])
		outFreq = append(outFreq, frequencies[maxIdx])
	}

	return outMag, outFreq
}
