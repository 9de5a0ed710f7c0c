package wav

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wavSpec describes a synthetic WAV buffer for tests
type wavSpec struct {
	audioFormat   uint16
	numChannels   uint16
	sampleRate    uint32
	bitsPerSample uint16
	payload       []byte
	declaredSize  int      // data chunk size; 0 means len(payload)
	extraChunks   [][]byte // raw chunks inserted before fmt
}

func buildWAV(t *testing.T, spec wavSpec) []byte {
	t.Helper()

	if spec.audioFormat == 0 {
		spec.audioFormat = 1
	}
	if spec.numChannels == 0 {
		spec.numChannels = 1
	}
	if spec.sampleRate == 0 {
		spec.sampleRate = 44100
	}
	declared := spec.declaredSize
	if declared == 0 {
		declared = len(spec.payload)
	}

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+len(spec.payload)))
	buf.WriteString("WAVE")

	for _, chunk := range spec.extraChunks {
		buf.Write(chunk)
	}

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, spec.audioFormat)
	binary.Write(&buf, binary.LittleEndian, spec.numChannels)
	binary.Write(&buf, binary.LittleEndian, spec.sampleRate)
	bytesPerSec := spec.sampleRate * uint32(spec.numChannels) * uint32(spec.bitsPerSample/8)
	binary.Write(&buf, binary.LittleEndian, bytesPerSec)
	binary.Write(&buf, binary.LittleEndian, spec.numChannels*spec.bitsPerSample/8)
	binary.Write(&buf, binary.LittleEndian, spec.bitsPerSample)

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(declared))
	buf.Write(spec.payload)

	return buf.Bytes()
}

func int16Payload(samples []float64) []byte {
	var buf bytes.Buffer
	for _, s := range samples {
		binary.Write(&buf, binary.LittleEndian, int16(s*32767))
	}
	return buf.Bytes()
}

func TestDecodeSineRoundTrip16Bit(t *testing.T) {
	const n = 1000
	original := make([]float64, n)
	for i := range original {
		original[i] = 0.8 * math.Sin(2*math.Pi*440*float64(i)/44100)
	}

	data := buildWAV(t, wavSpec{
		bitsPerSample: 16,
		payload:       int16Payload(original),
	})

	audio, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, audio.Samples, n)

	assert.Equal(t, 44100, audio.SampleRate)
	assert.Equal(t, 1, audio.NumChannels)
	assert.Equal(t, 16, audio.BitsPerSample)
	assert.InDelta(t, float64(n)/44100.0, audio.Duration, 1e-12)

	for i := range original {
		assert.InDelta(t, original[i], audio.Samples[i], 1.0/32768.0)
	}
}

func TestDecodeChannelAveraging(t *testing.T) {
	const frames = 64
	interleaved := make([]float64, 0, frames*2)
	for i := 0; i < frames; i++ {
		interleaved = append(interleaved, 0.5, -0.5)
	}

	data := buildWAV(t, wavSpec{
		numChannels:   2,
		bitsPerSample: 16,
		payload:       int16Payload(interleaved),
	})

	audio, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, audio.Samples, frames)
	require.Len(t, audio.OriginalSamples, frames*2)

	for _, s := range audio.Samples {
		assert.InDelta(t, 0.0, s, 1.0/32768.0)
	}
}

func TestDecode8Bit(t *testing.T) {
	data := buildWAV(t, wavSpec{
		bitsPerSample: 8,
		payload:       []byte{0, 255, 128},
	})

	audio, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, audio.Samples, 3)

	assert.Equal(t, -1.0, audio.Samples[0])
	assert.InDelta(t, (255.0-128.0)/128.0, audio.Samples[1], 1e-12)
	assert.Equal(t, 0.0, audio.Samples[2])
}

func TestDecode24BitSignExtension(t *testing.T) {
	payload := []byte{
		0x00, 0x00, 0x80, // -8388608 -> -1.0
		0xFF, 0xFF, 0x7F, // +8388607
		0xFF, 0xFF, 0xFF, // -1
	}

	data := buildWAV(t, wavSpec{
		bitsPerSample: 24,
		payload:       payload,
	})

	audio, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, audio.Samples, 3)

	assert.Equal(t, -1.0, audio.Samples[0])
	assert.InDelta(t, 8388607.0/8388608.0, audio.Samples[1], 1e-12)
	assert.InDelta(t, -1.0/8388608.0, audio.Samples[2], 1e-12)
}

func TestDecode32BitFloat(t *testing.T) {
	var buf bytes.Buffer
	for _, v := range []float32{0.25, -0.5, 2.0} {
		binary.Write(&buf, binary.LittleEndian, math.Float32bits(v))
	}

	data := buildWAV(t, wavSpec{
		audioFormat:   3,
		bitsPerSample: 32,
		payload:       buf.Bytes(),
	})

	audio, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, audio.Samples, 3)

	assert.InDelta(t, 0.25, audio.Samples[0], 1e-7)
	assert.InDelta(t, -0.5, audio.Samples[1], 1e-7)
	// Out-of-range float samples are clamped, never rejected
	assert.Equal(t, 1.0, audio.Samples[2])
}

func TestDecode32BitIntPCM(t *testing.T) {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, int32(math.MinInt32))
	binary.Write(&buf, binary.LittleEndian, int32(1<<30))

	data := buildWAV(t, wavSpec{
		bitsPerSample: 32,
		payload:       buf.Bytes(),
	})

	audio, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, audio.Samples, 2)

	assert.Equal(t, -1.0, audio.Samples[0])
	assert.InDelta(t, 0.5, audio.Samples[1], 1e-12)
}

func TestDecodeInvalidMagic(t *testing.T) {
	data := buildWAV(t, wavSpec{bitsPerSample: 16, payload: int16Payload([]float64{0})})
	copy(data[0:4], "JUNK")

	_, err := Decode(data)
	assert.ErrorIs(t, err, ErrInvalidFormat)

	data = buildWAV(t, wavSpec{bitsPerSample: 16, payload: int16Payload([]float64{0})})
	copy(data[8:12], "AIFF")

	_, err = Decode(data)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestDecodeMissingDataChunk(t *testing.T) {
	data := buildWAV(t, wavSpec{bitsPerSample: 16, payload: int16Payload([]float64{0, 0})})
	// Corrupt the data chunk ID so the scan never finds it
	idx := bytes.Index(data, []byte("data"))
	require.GreaterOrEqual(t, idx, 0)
	copy(data[idx:idx+4], "junk")

	_, err := Decode(data)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestDecodeUnsupportedBitDepth(t *testing.T) {
	data := buildWAV(t, wavSpec{
		bitsPerSample: 12,
		payload:       []byte{0, 0, 0},
	})

	_, err := Decode(data)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDecodeTruncatedDataReturnsPartialResult(t *testing.T) {
	payload := int16Payload([]float64{0.1, 0.2, 0.3, 0.4})

	data := buildWAV(t, wavSpec{
		bitsPerSample: 16,
		payload:       payload,
		declaredSize:  len(payload) + 20, // claims more than the buffer holds
	})

	audio, err := Decode(data)
	require.NoError(t, err)

	assert.Len(t, audio.Samples, 4)
	assert.Equal(t, 4, audio.NumSamples)
}

func TestDecodeHugeDeclaredSizeDoesNotAllocate(t *testing.T) {
	payload := int16Payload([]float64{0.1, 0.2, 0.3, 0.4})

	// A tiny buffer claiming a ~2 GiB data chunk must decode the bytes that
	// are actually present instead of reserving sample storage up front
	data := buildWAV(t, wavSpec{
		bitsPerSample: 16,
		payload:       payload,
		declaredSize:  0x7FFFFF00,
	})

	audio, err := Decode(data)
	require.NoError(t, err)

	assert.Len(t, audio.Samples, 4)
	assert.Equal(t, 4, audio.NumSamples)
}

func TestDecodeSkipsUnknownChunks(t *testing.T) {
	list := []byte("LIST")
	list = binary.LittleEndian.AppendUint32(list, 5)
	list = append(list, 'I', 'N', 'F', 'O', 'x')
	list = append(list, 0) // pad byte for the odd-sized chunk

	data := buildWAV(t, wavSpec{
		bitsPerSample: 16,
		payload:       int16Payload([]float64{0.5}),
		extraChunks:   [][]byte{list},
	})

	audio, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, audio.Samples, 1)
	assert.InDelta(t, 0.5, audio.Samples[0], 1.0/32768.0)
}

func TestDecodeTooShortBuffer(t *testing.T) {
	_, err := Decode([]byte("RIFF"))
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
