package configs

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/soniview/soniview/algorithms/spectral"
	"github.com/soniview/soniview/algorithms/windowing"
)

// Config represents the application configuration
type Config struct {
	Verbose  bool   `mapstructure:"verbose"`
	LogLevel string `mapstructure:"log_level"`

	// Audio analysis configuration
	Audio AudioConfig `mapstructure:"audio"`

	// Optional IIR pre-filter
	Filter FilterConfig `mapstructure:"filter"`

	// Output configuration
	Output OutputConfig `mapstructure:"output"`
}

// AudioConfig contains spectrogram generation settings
type AudioConfig struct {
	SampleRate   int     `mapstructure:"sample_rate"`
	FFTSize      int     `mapstructure:"fft_size"`
	Overlap      float64 `mapstructure:"overlap"`
	Window       string  `mapstructure:"window"`
	MinFreq      float64 `mapstructure:"min_freq"`
	MaxFreq      float64 `mapstructure:"max_freq"`
	DynamicRange float64 `mapstructure:"dynamic_range"`
}

// FilterConfig contains the optional IIR pre-filter settings
type FilterConfig struct {
	Enabled          bool   `mapstructure:"enabled"`
	CoefficientsFile string `mapstructure:"coefficients_file"`
}

// OutputConfig contains output formatting settings
type OutputConfig struct {
	Format   string `mapstructure:"format"` // "json" or "table"
	ColorMap string `mapstructure:"color_map"`
}

// SetDefaults registers default configuration values with viper
func SetDefaults(v *viper.Viper) {
	v.SetDefault("verbose", false)
	v.SetDefault("log_level", "info")

	v.SetDefault("audio.sample_rate", 44100)
	v.SetDefault("audio.fft_size", 1024)
	v.SetDefault("audio.overlap", 0.75)
	v.SetDefault("audio.window", "hanning")
	v.SetDefault("audio.min_freq", 0.0)
	v.SetDefault("audio.max_freq", 0.0) // 0 means Nyquist
	v.SetDefault("audio.dynamic_range", 50.0)

	v.SetDefault("filter.enabled", false)
	v.SetDefault("filter.coefficients_file", "")

	v.SetDefault("output.format", "table")
	v.SetDefault("output.color_map", "heat")
}

// Load unmarshals the viper state into a Config
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks configuration invariants up front, so analysis code only
// ever sees usable settings
func (c *Config) Validate() error {
	if c.Audio.FFTSize <= 0 {
		return fmt.Errorf("audio.fft_size must be positive, got %d", c.Audio.FFTSize)
	}
	if c.Audio.Overlap < 0 || c.Audio.Overlap >= 1 {
		return fmt.Errorf("audio.overlap must be in [0,1), got %g", c.Audio.Overlap)
	}
	if c.Filter.Enabled && c.Filter.CoefficientsFile == "" {
		return fmt.Errorf("filter.enabled requires filter.coefficients_file")
	}
	return nil
}

// SpectrogramOptions converts the audio section into generator options.
// The sample rate is overridden per input file after WAV parsing.
func (c *Config) SpectrogramOptions() spectral.Options {
	return spectral.Options{
		SampleRate:   c.Audio.SampleRate,
		FFTSize:      c.Audio.FFTSize,
		Overlap:      c.Audio.Overlap,
		Window:       windowing.ParseType(c.Audio.Window),
		MinFreq:      c.Audio.MinFreq,
		MaxFreq:      c.Audio.MaxFreq,
		DynamicRange: c.Audio.DynamicRange,
	}
}
