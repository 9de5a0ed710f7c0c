package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/soniview/soniview/algorithms/spectral"
	"github.com/soniview/soniview/wav"
)

var (
	spectrumSlice  int
	spectrumFormat string
)

var spectrumCmd = &cobra.Command{
	Use:   "spectrum <file.wav>",
	Short: "Compute a single-shot spectrum of a recording",
	Long: `Computes the window-gain-corrected magnitude spectrum of an entire
recording. With --slice, computes the spectrum of the PCM segment backing one
spectrogram frame instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runSpectrum,
}

func init() {
	spectrumCmd.Flags().IntVar(&spectrumSlice, "slice", -1,
		"spectrogram frame index to analyze instead of the full recording")
	spectrumCmd.Flags().StringVar(&spectrumFormat, "format", "json",
		"output format (json, csv)")

	rootCmd.AddCommand(spectrumCmd)
}

func runSpectrum(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	audio, err := wav.Decode(data)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", args[0], err)
	}

	opts := cfg.SpectrogramOptions()
	opts.SampleRate = audio.SampleRate

	analyzer := spectral.NewFullSpectrumAnalyzer()

	var magnitude, frequencies []float64
	if spectrumSlice >= 0 {
		generator := spectral.NewSpectrogramGenerator()
		result, err := generator.Generate(audio.Samples, opts)
		if err != nil {
			return err
		}

		slice, err := analyzer.TimeSlice(audio.Samples, result, spectrumSlice)
		if err != nil {
			return err
		}
		magnitude, frequencies = slice.Magnitude, slice.Frequencies
	} else {
		full, err := analyzer.Compute(audio.Samples, opts)
		if err != nil {
			return err
		}
		magnitude, frequencies = full.Magnitude, full.Frequencies
	}

	out := cmd.OutOrStdout()
	if spectrumFormat == "csv" {
		fmt.Fprintln(out, "frequency_hz,magnitude")
		for i := range magnitude {
			fmt.Fprintf(out, "%g,%g\n", frequencies[i], magnitude[i])
		}
		return nil
	}

	enc := json.NewEncoder(out)
	return enc.Encode(map[string]any{
		"frequencies": frequencies,
		"magnitude":   magnitude,
	})
}
