package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/soniview/soniview/configs"
	"github.com/soniview/soniview/logging"
)

var (
	configFile string
	verbose    bool
	logLevel   string

	cfg *configs.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "soniview",
	Short: "Audio spectrogram analysis toolkit",
	Long: `soniview decodes WAV audio into normalized PCM and computes
time-frequency spectrograms, single-shot spectra and filtered signals.

Key features:
- RIFF/WAVE parsing for 8/16/24/32-bit integer and 32-bit float PCM
- Windowed STFT spectrograms with configurable FFT size and overlap
- Optional IIR pre-filtering from YAML coefficient files
- PNG rendering with configurable color maps and dynamic range`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default is $HOME/.config/soniview/soniview.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"verbose output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"log level (debug, info, warn, error)")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig reads in the config file and environment variables if set
func initConfig() {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.AddConfigPath(home + "/.config/soniview")
		}
		viper.AddConfigPath(".")
		viper.SetConfigName("soniview")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("SONIVIEW")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	configs.SetDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
		}
	}
}

// initializeConfig binds flags, loads the config and wires the logger
func initializeConfig(cmd *cobra.Command) error {
	if err := bindFlags(cmd, viper.GetViper()); err != nil {
		return err
	}

	loaded, err := configs.Load(viper.GetViper())
	if err != nil {
		return err
	}
	cfg = loaded

	level := logging.ParseLevel(cfg.LogLevel)
	if cfg.Verbose {
		level = logging.DebugLevel
	}

	logger, err := logging.NewProductionZapLogger(level)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	logging.SetGlobalLogger(logger)

	return nil
}

// bindFlags makes every cobra flag available through viper under its
// underscore-normalized name
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		name := strings.ReplaceAll(f.Name, "-", "_")
		if err := v.BindPFlag(name, f); err != nil && bindErr == nil {
			bindErr = err
		}
	})
	return bindErr
}
