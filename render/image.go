package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/soniview/soniview/algorithms/common"
	"github.com/soniview/soniview/algorithms/spectral"
)

// ImageOptions controls spectrogram rasterization
type ImageOptions struct {
	ColorMap ColorMap
}

// Image rasterizes a spectrogram result: time runs left to right, frequency
// bottom to top. Only bins inside the result's [MinFreq, MaxFreq] range are
// drawn, and the color scale spans DynamicRange dB below the matrix peak.
func Image(result *spectral.SpectrogramResult, opts ImageOptions) (*image.RGBA, error) {
	if result == nil || len(result.Spectrogram) == 0 {
		return nil, fmt.Errorf("render: empty spectrogram result")
	}

	loBin, hiBin := frequencyBinRange(result)
	if hiBin <= loBin {
		return nil, fmt.Errorf("render: frequency range [%g, %g] selects no bins",
			result.Options.MinFreq, result.Options.MaxFreq)
	}

	maxDB := result.Spectrogram[0][loBin]
	for _, row := range result.Spectrogram {
		if m := common.Max(row[loBin:hiBin]); m > maxDB {
			maxDB = m
		}
	}

	width := len(result.Spectrogram)
	height := hiBin - loBin
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	for x, row := range result.Spectrogram {
		for bin := loBin; bin < hiBin; bin++ {
			intensity := Intensity(row[bin], maxDB, result.Options.DynamicRange)
			// Low frequencies at the bottom of the image
			y := height - 1 - (bin - loBin)
			img.SetRGBA(x, y, opts.ColorMap.Color(intensity))
		}
	}

	return img, nil
}

// WritePNG rasterizes a spectrogram and PNG-encodes it to w
func WritePNG(w io.Writer, result *spectral.SpectrogramResult, opts ImageOptions) error {
	img, err := Image(result, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// SavePNG rasterizes a spectrogram and writes it to a PNG file
func SavePNG(path string, result *spectral.SpectrogramResult, opts ImageOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return WritePNG(f, result, opts)
}

// TimeTicks returns rounded tick positions for the time axis
func TimeTicks(result *spectral.SpectrogramResult, maxTicks int) []float64 {
	return NiceTicks(0, result.Options.Duration, maxTicks)
}

// FrequencyTicks returns rounded tick positions for the displayed frequency range
func FrequencyTicks(result *spectral.SpectrogramResult, maxTicks int) []float64 {
	return NiceTicks(result.Options.MinFreq, result.Options.MaxFreq, maxTicks)
}

// frequencyBinRange selects the [lo, hi) bin span covered by the configured
// MinFreq/MaxFreq. The range only filters display; it never affects generation.
func frequencyBinRange(result *spectral.SpectrogramResult) (int, int) {
	lo := 0
	hi := len(result.Frequencies)

	for lo < hi && result.Frequencies[lo] < result.Options.MinFreq {
		lo++
	}
	if result.Options.MaxFreq > 0 {
		for hi > lo && result.Frequencies[hi-1] > result.Options.MaxFreq {
			hi--
		}
	}
	return lo, hi
}
