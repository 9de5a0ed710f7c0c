package render

import (
	"math"
)

// NiceTicks produces rounded axis tick positions covering [min, max] with at
// most maxTicks entries, using the usual 1/2/5 step progression. Ticks outside
// [min, max] are not emitted.
func NiceTicks(min, max float64, maxTicks int) []float64 {
	if maxTicks < 2 {
		maxTicks = 2
	}
	if max <= min {
		return []float64{min}
	}

	step := niceStep((max - min) / float64(maxTicks-1))

	var ticks []float64
	for v := math.Ceil(min/step) * step; v <= max+step*1e-9; v += step {
		ticks = append(ticks, v)
	}
	return ticks
}

// niceStep rounds a raw step up to the nearest 1, 2 or 5 times a power of ten
func niceStep(raw float64) float64 {
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	norm := raw / mag

	switch {
	case norm <= 1:
		return mag
	case norm <= 2:
		return 2 * mag
	case norm <= 5:
		return 5 * mag
	default:
		return 10 * mag
	}
}
