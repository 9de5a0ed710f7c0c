package configs

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soniview/soniview/algorithms/windowing"
)

func TestLoadDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, 44100, cfg.Audio.SampleRate)
	assert.Equal(t, 1024, cfg.Audio.FFTSize)
	assert.InDelta(t, 0.75, cfg.Audio.Overlap, 1e-12)
	assert.Equal(t, "hanning", cfg.Audio.Window)
	assert.False(t, cfg.Filter.Enabled)
	assert.Equal(t, "table", cfg.Output.Format)
}

func TestValidateRejectsBadValues(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("audio.overlap", 1.5)

	_, err := Load(v)
	assert.Error(t, err)

	v = viper.New()
	SetDefaults(v)
	v.Set("audio.fft_size", 0)

	_, err = Load(v)
	assert.Error(t, err)

	v = viper.New()
	SetDefaults(v)
	v.Set("filter.enabled", true)

	_, err = Load(v)
	assert.Error(t, err)
}

func TestSpectrogramOptions(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("audio.window", "blackman")
	v.Set("audio.dynamic_range", 60.0)

	cfg, err := Load(v)
	require.NoError(t, err)

	opts := cfg.SpectrogramOptions()
	assert.Equal(t, windowing.TypeBlackman, opts.Window)
	assert.InDelta(t, 60.0, opts.DynamicRange, 1e-12)
	assert.Equal(t, 1024, opts.FFTSize)
}
