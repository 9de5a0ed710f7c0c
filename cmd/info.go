package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/soniview/soniview/wav"
)

var infoCmd = &cobra.Command{
	Use:   "info <file.wav>",
	Short: "Print WAV container metadata",
	Long:  `Parses a WAV file and prints its format, sample counts and duration.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	audio, err := wav.Decode(data)
	if err != nil {
		return err
	}

	if cfg.Output.Format == "json" {
		summary := map[string]any{
			"sampleRate":    audio.SampleRate,
			"numChannels":   audio.NumChannels,
			"bitsPerSample": audio.BitsPerSample,
			"numSamples":    audio.NumSamples,
			"duration":      audio.Duration,
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "File:            %s\n", args[0])
	fmt.Fprintf(out, "Sample rate:     %d Hz\n", audio.SampleRate)
	fmt.Fprintf(out, "Channels:        %d\n", audio.NumChannels)
	fmt.Fprintf(out, "Bits per sample: %d\n", audio.BitsPerSample)
	fmt.Fprintf(out, "Samples:         %d\n", audio.NumSamples)
	fmt.Fprintf(out, "Duration:        %.3f s\n", audio.Duration)
	return nil
}
