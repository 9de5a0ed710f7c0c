package spectral

import (
	"math"

	"github.com/soniview/soniview/algorithms/windowing"
	"github.com/soniview/soniview/logging"
)

// magnitudeFloor keeps dB conversion finite (~ -200 dB)
const magnitudeFloor = 1e-10

// meteringFloorDB replaces invalid metering entries before conversion
const meteringFloorDB = -160.0

// SpectrogramResult is the output of a spectrogram generation pass.
//
// Spectrogram[frame][bin] holds dB magnitudes. Frequencies is shared by all
// frames and strictly increasing with length FFTSize/2; Times has one
// non-decreasing entry per frame. Options carries the effective configuration
// including the computed Duration. Results are never mutated, only replaced.
type SpectrogramResult struct {
	Spectrogram [][]float64 `json:"spectrogram"`
	Frequencies []float64   `json:"frequencies"`
	Times       []float64   `json:"times"`
	Options     Options     `json:"options"`
}

// SpectrogramGenerator slices a signal into overlapping frames and assembles
// the dB-scale time-frequency matrix. It is stateless apart from its logger;
// concurrent Generate calls on independent inputs are safe.
type SpectrogramGenerator struct {
	spectrum *SpectrumAnalyzer
	logger   logging.Logger
}

// NewSpectrogramGenerator creates a new STFT spectrogram generator
func NewSpectrogramGenerator() *SpectrogramGenerator {
	return &SpectrogramGenerator{
		spectrum: NewSpectrumAnalyzer(),
		logger: logging.WithFields(logging.Fields{
			"component": "spectrogram_generator",
		}),
	}
}

// Generate computes the spectrogram of a PCM signal.
//
// Signals shorter than fftSize are zero-padded to one full frame. Trailing
// samples that do not fill a complete frame are dropped, never padded; the
// time axis math depends on that framing, so it is not an approximation to
// "fix".
//
// A zero Overlap in opts means adjacent frames, not "use the default".
// Construct opts from DefaultOptions to get the standard 75% overlap.
func (g *SpectrogramGenerator) Generate(samples []float64, opts Options) (*SpectrogramResult, error) {
	if len(samples) == 0 {
		return nil, ErrEmptyInput
	}

	opts = opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	input := samples
	if len(input) < opts.FFTSize {
		padded := make([]float64, opts.FFTSize)
		copy(padded, input)
		input = padded
	}

	n := len(input)
	hopSize := opts.hopSize()

	totalFrames := (n-opts.FFTSize)/hopSize + 1
	if totalFrames < 1 {
		totalFrames = 1
	}

	actualDuration := float64(n) / float64(opts.SampleRate)
	window := windowing.New(opts.FFTSize, opts.Window)

	matrix := make([][]float64, 0, totalFrames)
	times := make([]float64, 0, totalFrames)
	var frequencies []float64

	for i := 0; i < totalFrames; i++ {
		start := i * hopSize
		if start+opts.FFTSize > n {
			continue
		}

		frame := input[start : start+opts.FFTSize]
		spectrum := g.spectrum.computeWindowed(frame, window, opts)

		row := spectrum.Magnitude
		for k, mag := range row {
			if mag < magnitudeFloor || math.IsNaN(mag) {
				mag = magnitudeFloor
			}
			row[k] = 20 * math.Log10(mag)
		}

		matrix = append(matrix, row)
		times = append(times, frameTime(i, totalFrames, actualDuration))

		if frequencies == nil {
			frequencies = spectrum.Frequencies
		}
	}

	g.logger.Debug("spectrogram generated", logging.Fields{
		"frames":   len(matrix),
		"bins":     opts.FFTSize / 2,
		"hop_size": hopSize,
		"duration": actualDuration,
	})

	opts.Duration = actualDuration

	return &SpectrogramResult{
		Spectrogram: matrix,
		Frequencies: frequencies,
		Times:       times,
		Options:     opts,
	}, nil
}

// GenerateFromMetering computes a spectrogram from dB metering values, the
// degraded fallback used when no PCM is available.
func (g *SpectrogramGenerator) GenerateFromMetering(db []float64, opts Options) (*SpectrogramResult, error) {
	if len(db) == 0 {
		return nil, ErrEmptyInput
	}
	return g.Generate(FromMetering(db), opts)
}

// FromMetering converts dB metering values to a linear pseudo-PCM buffer.
// NaN and infinite entries are clamped to -160 dB before conversion.
func FromMetering(db []float64) []float64 {
	linear := make([]float64, len(db))
	for i, v := range db {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = meteringFloorDB
		}
		linear[i] = math.Pow(10, v/20.0)
	}
	return linear
}

// frameTime spreads frame timestamps evenly across the processed duration
func frameTime(index, totalFrames int, duration float64) float64 {
	if totalFrames > 1 {
		return float64(index) / float64(totalFrames-1) * duration
	}
	return duration / 2
}
