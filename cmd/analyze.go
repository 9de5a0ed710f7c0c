package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/soniview/soniview/algorithms/filters"
	"github.com/soniview/soniview/algorithms/spectral"
	"github.com/soniview/soniview/algorithms/windowing"
	"github.com/soniview/soniview/logging"
	"github.com/soniview/soniview/render"
	"github.com/soniview/soniview/wav"
)

var (
	analyzeOut          string
	analyzeJSON         bool
	analyzeFFTSize      int
	analyzeOverlap      float64
	analyzeWindow       string
	analyzeCoefficients string
	analyzeColorMap     string
	analyzeMinFreq      float64
	analyzeMaxFreq      float64
	analyzeDynamic      float64
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file.wav>",
	Short: "Generate a spectrogram from a WAV file",
	Long: `Decodes a WAV file, optionally applies an IIR pre-filter, computes the
STFT spectrogram and renders it to a PNG image.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "spectrogram.png", "output PNG path")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print a JSON summary instead of a table")
	analyzeCmd.Flags().IntVar(&analyzeFFTSize, "fft-size", 0, "FFT size (power of two, default from config)")
	analyzeCmd.Flags().Float64Var(&analyzeOverlap, "overlap", -1, "frame overlap ratio in [0,1)")
	analyzeCmd.Flags().StringVar(&analyzeWindow, "window", "", "window type (hanning, hamming, blackman, bartlett, rectangular)")
	analyzeCmd.Flags().StringVar(&analyzeCoefficients, "coefficients", "", "YAML IIR coefficient file to pre-filter with")
	analyzeCmd.Flags().StringVar(&analyzeColorMap, "color-map", "", "color map (heat, grayscale)")
	analyzeCmd.Flags().Float64Var(&analyzeMinFreq, "min-freq", -1, "lowest rendered frequency in Hz")
	analyzeCmd.Flags().Float64Var(&analyzeMaxFreq, "max-freq", -1, "highest rendered frequency in Hz")
	analyzeCmd.Flags().Float64Var(&analyzeDynamic, "dynamic-range", 0, "rendered dynamic range in dB")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	logger := logging.WithFields(logging.Fields{"command": "analyze"})

	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	audio, err := wav.Decode(data)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", args[0], err)
	}

	samples := audio.Samples
	if coeffFile := coefficientsFile(); coeffFile != "" {
		coeffs, err := filters.LoadCoefficients(coeffFile)
		if err != nil {
			return err
		}

		filter, err := filters.NewIIRFilter(coeffs)
		if err != nil {
			return err
		}

		samples = filter.ProcessBuffer(samples)
		logger.Debug("applied IIR pre-filter", logging.Fields{
			"coefficients_file": coeffFile,
		})
	}

	opts := analysisOptions(audio.SampleRate)

	generator := spectral.NewSpectrogramGenerator()
	result, err := generator.Generate(samples, opts)
	if err != nil {
		return err
	}

	colorMap := cfg.Output.ColorMap
	if analyzeColorMap != "" {
		colorMap = analyzeColorMap
	}

	if err := render.SavePNG(analyzeOut, result, render.ImageOptions{
		ColorMap: render.ParseColorMap(colorMap),
	}); err != nil {
		return fmt.Errorf("writing %s: %w", analyzeOut, err)
	}

	logger.Info("spectrogram written", logging.Fields{
		"path":   analyzeOut,
		"frames": len(result.Spectrogram),
		"bins":   len(result.Frequencies),
	})

	if analyzeJSON || cfg.Output.Format == "json" {
		summary := map[string]any{
			"frames":   len(result.Spectrogram),
			"bins":     len(result.Frequencies),
			"duration": result.Options.Duration,
			"options":  result.Options,
			"image":    analyzeOut,
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Frames:    %d\n", len(result.Spectrogram))
	fmt.Fprintf(out, "Bins:      %d\n", len(result.Frequencies))
	fmt.Fprintf(out, "Duration:  %.3f s\n", result.Options.Duration)
	fmt.Fprintf(out, "Image:     %s\n", analyzeOut)
	return nil
}

func coefficientsFile() string {
	if analyzeCoefficients != "" {
		return analyzeCoefficients
	}
	if cfg.Filter.Enabled {
		return cfg.Filter.CoefficientsFile
	}
	return ""
}

// analysisOptions merges config, per-command flags and the decoded file's
// sample rate into effective generator options
func analysisOptions(sampleRate int) spectral.Options {
	opts := cfg.SpectrogramOptions()
	opts.SampleRate = sampleRate

	if analyzeFFTSize > 0 {
		opts.FFTSize = analyzeFFTSize
	}
	if analyzeOverlap >= 0 {
		opts.Overlap = analyzeOverlap
	}
	if analyzeWindow != "" {
		opts.Window = windowing.ParseType(analyzeWindow)
	}
	if analyzeMinFreq >= 0 {
		opts.MinFreq = analyzeMinFreq
	}
	if analyzeMaxFreq >= 0 {
		opts.MaxFreq = analyzeMaxFreq
	}
	if analyzeDynamic > 0 {
		opts.DynamicRange = analyzeDynamic
	}
	if opts.MaxFreq == 0 {
		opts.MaxFreq = float64(sampleRate) / 2
	}

	return opts
}
