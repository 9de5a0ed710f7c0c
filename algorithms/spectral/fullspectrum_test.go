package spectral

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soniview/soniview/algorithms/windowing"
)

func TestFullSpectrumPointBudget(t *testing.T) {
	opts := Options{SampleRate: 44100, FFTSize: 1024, Window: windowing.TypeHanning}
	analyzer := NewFullSpectrumAnalyzer()

	// 8192 samples -> 4096 raw bins -> bounded for plotting
	full, err := analyzer.Compute(sine(8192, 1000, 44100), opts)
	require.NoError(t, err)

	assert.LessOrEqual(t, len(full.Magnitude), maxPlotPoints)
	assert.Equal(t, len(full.Magnitude), len(full.Frequencies))
	assert.Equal(t, 1, full.DecimationFactor)
	assert.InDelta(t, 44100.0, full.SampleRate, 1e-9)
}

func TestFullSpectrumDecimatesLongSignals(t *testing.T) {
	opts := Options{SampleRate: 44100, FFTSize: 1024, Window: windowing.TypeRectangular}
	analyzer := NewFullSpectrumAnalyzer()

	// One sample over the cap forces peak decimation by a factor of 2
	samples := make([]float64, maxFullSpectrumSamples+1)
	for i := range samples {
		samples[i] = 0.5
	}

	full, err := analyzer.Compute(samples, opts)
	require.NoError(t, err)

	assert.Equal(t, 2, full.DecimationFactor)
	assert.InDelta(t, 22050.0, full.SampleRate, 1e-9)
	assert.LessOrEqual(t, len(full.Magnitude), maxPlotPoints)

	// The frequency axis follows the halved effective rate
	assert.Equal(t, 0.0, full.Frequencies[0])
	assert.Less(t, full.Frequencies[len(full.Frequencies)-1], 22050.0/2)

	// A constant signal keeps its energy at DC after decimation
	assert.Equal(t, full.Magnitude[0], maxValue(full.Magnitude))
}

func TestFullSpectrumPadsToPowerOfTwo(t *testing.T) {
	opts := Options{SampleRate: 8000, FFTSize: 256, Window: windowing.TypeRectangular}
	analyzer := NewFullSpectrumAnalyzer()

	// 300 samples pad to 512; bins = 256
	full, err := analyzer.Compute(make([]float64, 300), opts)
	require.NoError(t, err)

	assert.Len(t, full.Magnitude, 256)
	binWidth := 8000.0 / 512.0
	assert.InDelta(t, binWidth, full.Frequencies[1], 1e-9)
}

func TestFullSpectrumGainCorrection(t *testing.T) {
	const (
		sampleRate = 8192
		n          = 1024
	)
	// Exact-bin sine so the peak stays in one bin
	freq := 32.0 * float64(sampleRate) / float64(n)
	signal := sine(n, freq, sampleRate)
	analyzer := NewFullSpectrumAnalyzer()

	rect, err := analyzer.Compute(signal, Options{SampleRate: sampleRate, FFTSize: 256, Window: windowing.TypeRectangular})
	require.NoError(t, err)
	hann, err := analyzer.Compute(signal, Options{SampleRate: sampleRate, FFTSize: 256, Window: windowing.TypeHanning})
	require.NoError(t, err)

	rectPeak := maxValue(rect.Magnitude)
	hannPeak := maxValue(hann.Magnitude)

	// After 1/gain correction both windows report comparable peak amplitude
	assert.InEpsilon(t, rectPeak, hannPeak, 0.05)
}

func TestFullSpectrumEmptyInput(t *testing.T) {
	_, err := NewFullSpectrumAnalyzer().Compute(nil, DefaultOptions())
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestTimeSliceSpectrum(t *testing.T) {
	opts := Options{SampleRate: 8000, FFTSize: 256, Overlap: 0, Window: windowing.TypeHanning}
	samples := sine(2048, 500, 8000)

	g := NewSpectrogramGenerator()
	result, err := g.Generate(samples, opts)
	require.NoError(t, err)
	require.Len(t, result.Spectrogram, 8)

	analyzer := NewFullSpectrumAnalyzer()
	slice, err := analyzer.TimeSlice(samples, result, 3)
	require.NoError(t, err)

	assert.Len(t, slice.Magnitude, 128)
	assert.Len(t, slice.Frequencies, 128)
	assert.Equal(t, 8000, slice.SampleRate)
}

func TestTimeSliceGainCorrection(t *testing.T) {
	// A constant signal sliced with a hanning window should report the DC
	// magnitude a rectangular slice reports, thanks to 1/gain correction
	samples := make([]float64, 1024)
	for i := range samples {
		samples[i] = 0.5
	}

	g := NewSpectrogramGenerator()
	analyzer := NewFullSpectrumAnalyzer()

	rectOpts := Options{SampleRate: 8000, FFTSize: 256, Overlap: 0, Window: windowing.TypeRectangular}
	rectResult, err := g.Generate(samples, rectOpts)
	require.NoError(t, err)
	rectSlice, err := analyzer.TimeSlice(samples, rectResult, 0)
	require.NoError(t, err)

	hannOpts := Options{SampleRate: 8000, FFTSize: 256, Overlap: 0, Window: windowing.TypeHanning}
	hannResult, err := g.Generate(samples, hannOpts)
	require.NoError(t, err)
	hannSlice, err := analyzer.TimeSlice(samples, hannResult, 0)
	require.NoError(t, err)

	assert.InEpsilon(t, rectSlice.Magnitude[0], hannSlice.Magnitude[0], 0.05)
}

func TestTimeSliceErrors(t *testing.T) {
	opts := Options{SampleRate: 8000, FFTSize: 256, Overlap: 0}
	samples := make([]float64, 1024)

	g := NewSpectrogramGenerator()
	result, err := g.Generate(samples, opts)
	require.NoError(t, err)

	analyzer := NewFullSpectrumAnalyzer()

	_, err = analyzer.TimeSlice(nil, result, 0)
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = analyzer.TimeSlice(samples, nil, 0)
	assert.ErrorIs(t, err, ErrInvalidOptions)

	_, err = analyzer.TimeSlice(samples, result, -1)
	assert.ErrorIs(t, err, ErrInvalidOptions)

	_, err = analyzer.TimeSlice(samples, result, len(result.Spectrogram))
	assert.ErrorIs(t, err, ErrInvalidOptions)
}

func maxValue(data []float64) float64 {
	max := data[0]
	for _, v := range data[1:] {
		if v > max {
			max = v
		}
	}
	return max
}
