package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/soniview/soniview/logging"
)

// Sentinel errors for container-level failures. Truncated data chunks are not
// errors: the decoder returns the samples decoded so far and logs a warning.
var (
	// ErrInvalidFormat indicates a buffer that is not a RIFF/WAVE container
	// or is missing a required chunk.
	ErrInvalidFormat = errors.New("wav: invalid RIFF/WAVE container")

	// ErrUnsupportedFormat indicates a bit depth or audio format code the
	// decoder cannot handle. The caller should transcode externally.
	ErrUnsupportedFormat = errors.New("wav: unsupported sample format")
)

// Audio format codes from the fmt chunk
const (
	formatPCM       = 1
	formatIEEEFloat = 3
)

// Audio holds decoded, normalized PCM audio.
//
// Samples is always mono: for multi-channel files it is the per-frame average
// across channels. OriginalSamples keeps the interleaved channel data as
// decoded. All values are clamped to [-1, 1].
type Audio struct {
	Samples         []float64
	OriginalSamples []float64
	SampleRate      int
	NumChannels     int
	BitsPerSample   int
	NumSamples      int // interleaved samples decoded, all channels
	Duration        float64
}

// Decoder parses RIFF/WAVE byte buffers into normalized PCM.
type Decoder struct {
	logger logging.Logger
}

// NewDecoder creates a decoder that logs through the global logger
func NewDecoder() *Decoder {
	return &Decoder{
		logger: logging.WithFields(logging.Fields{
			"component": "wav_decoder",
		}),
	}
}

// Decode parses a WAV buffer with the default decoder
func Decode(data []byte) (*Audio, error) {
	return NewDecoder().Decode(data)
}

// Decode parses a WAV byte buffer into normalized PCM samples.
//
// A data chunk shorter than declared is tolerated: decoding stops at the last
// complete sample and the partial result is returned. Malformed headers and
// unsupported sample formats fail.
func (d *Decoder) Decode(data []byte) (*Audio, error) {
	if len(data) < 12 {
		return nil, fmt.Errorf("%w: buffer too short (%d bytes)", ErrInvalidFormat, len(data))
	}

	if string(data[0:4]) != "RIFF" {
		return nil, fmt.Errorf("%w: missing RIFF magic", ErrInvalidFormat)
	}
	if string(data[8:12]) != "WAVE" {
		return nil, fmt.Errorf("%w: missing WAVE magic", ErrInvalidFormat)
	}

	fmtOffset, _, err := findChunk(data, "fmt ")
	if err != nil {
		return nil, err
	}
	if fmtOffset+16 > len(data) {
		return nil, fmt.Errorf("%w: fmt chunk truncated", ErrInvalidFormat)
	}

	audioFormat := int(binary.LittleEndian.Uint16(data[fmtOffset:]))
	numChannels := int(binary.LittleEndian.Uint16(data[fmtOffset+2:]))
	sampleRate := int(binary.LittleEndian.Uint32(data[fmtOffset+4:]))
	bitsPerSample := int(binary.LittleEndian.Uint16(data[fmtOffset+14:]))

	if numChannels <= 0 {
		return nil, fmt.Errorf("%w: channel count %d", ErrInvalidFormat, numChannels)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrInvalidFormat, sampleRate)
	}

	dataOffset, dataSize, err := findChunk(data, "data")
	if err != nil {
		return nil, err
	}

	samples, err := d.decodeSamples(data, dataOffset, dataSize, audioFormat, bitsPerSample)
	if err != nil {
		return nil, err
	}

	mono := samples
	if numChannels > 1 {
		mono = averageChannels(samples, numChannels)
	}

	framesPerChannel := len(samples) / numChannels

	return &Audio{
		Samples:         mono,
		OriginalSamples: samples,
		SampleRate:      sampleRate,
		NumChannels:     numChannels,
		BitsPerSample:   bitsPerSample,
		NumSamples:      len(samples),
		Duration:        float64(framesPerChannel) / float64(sampleRate),
	}, nil
}

// findChunk scans the chunk list starting after the RIFF header and returns
// the byte offset of the chunk body and its declared size. Odd-sized chunks
// are padded to even boundaries per the RIFF spec.
func findChunk(data []byte, id string) (offset, size int, err error) {
	pos := 12
	for pos+8 <= len(data) {
		chunkID := string(data[pos : pos+4])
		chunkSize := int(binary.LittleEndian.Uint32(data[pos+4:]))

		if chunkID == id {
			return pos + 8, chunkSize, nil
		}

		pos += 8 + chunkSize
		if chunkSize%2 != 0 {
			pos++
		}
	}
	return 0, 0, fmt.Errorf("%w: missing %q chunk", ErrInvalidFormat, id)
}

func (d *Decoder) decodeSamples(data []byte, offset, size, audioFormat, bitsPerSample int) ([]float64, error) {
	switch bitsPerSample {
	case 8, 16, 24:
	case 32:
		if audioFormat != formatPCM && audioFormat != formatIEEEFloat {
			return nil, fmt.Errorf("%w: 32-bit audio format code %d", ErrUnsupportedFormat, audioFormat)
		}
	default:
		return nil, fmt.Errorf("%w: %d bits per sample", ErrUnsupportedFormat, bitsPerSample)
	}

	bytesPerSample := bitsPerSample / 8
	total := size / bytesPerSample

	// Never trust the declared chunk size for allocation: a malformed header
	// can claim gigabytes the buffer does not hold. Cap by the complete
	// samples actually present and keep decoding what is there.
	avail := 0
	if offset < len(data) {
		avail = (len(data) - offset) / bytesPerSample
	}
	if total > avail {
		d.logger.Warn("data chunk truncated, returning partial result", logging.Fields{
			"declared_samples": total,
			"decoded_samples":  avail,
		})
		total = avail
	}

	samples := make([]float64, 0, total)
	for i := 0; i < total; i++ {
		pos := offset + i*bytesPerSample

		var v float64
		switch bitsPerSample {
		case 8:
			v = (float64(data[pos]) - 128.0) / 128.0
		case 16:
			v = float64(int16(binary.LittleEndian.Uint16(data[pos:]))) / 32768.0
		case 24:
			raw := int32(data[pos]) | int32(data[pos+1])<<8 | int32(data[pos+2])<<16
			if raw&0x800000 != 0 {
				raw -= 0x1000000
			}
			v = float64(raw) / 8388608.0
		case 32:
			if audioFormat == formatIEEEFloat {
				v = float64(math.Float32frombits(binary.LittleEndian.Uint32(data[pos:])))
			} else {
				v = float64(int32(binary.LittleEndian.Uint32(data[pos:]))) / 2147483648.0
			}
		}

		samples = append(samples, clamp(v))
	}

	return samples, nil
}

// averageChannels folds interleaved multi-channel samples into mono by
// per-frame averaging. A trailing partial frame is averaged over the channels
// it actually has.
func averageChannels(samples []float64, numChannels int) []float64 {
	frames := (len(samples) + numChannels - 1) / numChannels
	mono := make([]float64, 0, frames)

	for start := 0; start < len(samples); start += numChannels {
		end := start + numChannels
		if end > len(samples) {
			end = len(samples)
		}
		sum := 0.0
		for _, s := range samples[start:end] {
			sum += s
		}
		mono = append(mono, sum/float64(end-start))
	}

	return mono
}

func clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
