package render

import (
	"image/color"

	"github.com/soniview/soniview/algorithms/common"
)

// ColorMap maps normalized spectrogram intensity to a display color
type ColorMap int

const (
	// Grayscale maps intensity linearly to luminance
	Grayscale ColorMap = iota
	// Heat maps intensity through black-blue-magenta-orange-white
	Heat
)

// ParseColorMap maps a configuration string to a ColorMap, defaulting to Heat
func ParseColorMap(name string) ColorMap {
	switch name {
	case "gray", "grayscale":
		return Grayscale
	default:
		return Heat
	}
}

// heat gradient control points, low to high intensity
var heatStops = [][3]float64{
	{0.0, 0.0, 0.0},
	{0.1, 0.0, 0.4},
	{0.6, 0.0, 0.5},
	{1.0, 0.5, 0.0},
	{1.0, 1.0, 1.0},
}

// Intensity normalizes a dB value into [0,1] against the color scale window
// [maxDB-dynamicRange, maxDB]. Values below the window clamp to 0, above to 1.
func Intensity(db, maxDB, dynamicRange float64) float64 {
	if dynamicRange <= 0 {
		dynamicRange = 50
	}
	return common.Clamp((db-(maxDB-dynamicRange))/dynamicRange, 0, 1)
}

// Color converts a normalized intensity to a color under the given map
func (m ColorMap) Color(intensity float64) color.RGBA {
	intensity = common.Clamp(intensity, 0, 1)

	if m == Grayscale {
		v := uint8(intensity * 255)
		return color.RGBA{R: v, G: v, B: v, A: 255}
	}

	// Piecewise-linear interpolation between heat stops
	pos := intensity * float64(len(heatStops)-1)
	idx := int(pos)
	if idx >= len(heatStops)-1 {
		idx = len(heatStops) - 2
	}
	t := pos - float64(idx)

	lo, hi := heatStops[idx], heatStops[idx+1]
	return color.RGBA{
		R: uint8((lo[0] + (hi[0]-lo[0])*t) * 255),
		G: uint8((lo[1] + (hi[1]-lo[1])*t) * 255),
		B: uint8((lo[2] + (hi[2]-lo[2])*t) * 255),
		A: 255,
	}
}
