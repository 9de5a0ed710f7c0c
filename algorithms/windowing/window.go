package windowing

// Type identifies a window function shape
type Type string

const (
	TypeHanning     Type = "hanning"
	TypeHamming     Type = "hamming"
	TypeBlackman    Type = "blackman"
	TypeBartlett    Type = "bartlett"
	TypeRectangular Type = "rectangular"
)

// Window is the interface implemented by all window functions
type Window interface {
	// Apply applies the window to a signal (creates new array)
	Apply(signal []float64) []float64

	// ApplyInPlace applies the window to a signal in-place
	ApplyInPlace(signal []float64) error

	// Coefficients returns a copy of the window coefficients
	Coefficients() []float64

	// Size returns the window size
	Size() int

	// Type returns the window type
	Type() Type

	// Gain returns the amplitude correction constant for this window shape.
	// Dividing a measured magnitude by this constant undoes the average
	// attenuation the window introduced.
	Gain() float64
}

// New creates a window of the given size and type. Unknown types fall back
// to a rectangular window.
func New(size int, windowType Type) Window {
	switch windowType {
	case TypeHanning:
		return NewHanning(size)
	case TypeHamming:
		return NewHamming(size)
	case TypeBlackman:
		return NewBlackman(size)
	case TypeBartlett:
		return NewBartlett(size)
	default:
		return NewRectangular(size)
	}
}

// ParseType maps a configuration string to a window Type. Unknown names map
// to rectangular, mirroring the fallback in New.
func ParseType(name string) Type {
	switch Type(name) {
	case TypeHanning, TypeHamming, TypeBlackman, TypeBartlett, TypeRectangular:
		return Type(name)
	default:
		return TypeRectangular
	}
}

// Gain returns the amplitude correction constant for a window type without
// materializing the coefficients.
func Gain(windowType Type) float64 {
	switch windowType {
	case TypeHanning:
		return 0.5
	case TypeHamming:
		return 0.54
	case TypeBlackman:
		return 0.42
	case TypeBartlett:
		return 0.5
	default:
		return 1.0
	}
}
