package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/voicevitals/voicevitals/cmd/voicevitals/internal/config"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Global configuration (loaded before any command runs)
	globalConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "voicevitals",
	Short: "On-device speech emotion analysis",
	Long: `voicevitals - classify the emotional tone of voice recordings.

Recordings are analyzed entirely on-device: a WAV clip is conditioned
to the model's training distribution and run through a frozen ONNX
classifier. When no model artifact is available the tool still returns
a well-formed fallback result.

The model artifact is probed in ./assets, . and ./models unless an
explicit path is configured.

Examples:
  # Analyze a recording
  voicevitals analyze journal_entry.wav

  # Analyze and persist the sidecar metadata next to the clip
  voicevitals analyze --save journal_entry.wav

  # Machine-readable output
  voicevitals analyze --json journal_entry.wav

  # Show the label set of the configured model family
  voicevitals emotions`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

		var err error
		if configPath != "" {
			globalConfig, err = config.LoadFrom(configPath)
		} else {
			globalConfig, err = config.Load()
		}
		return err
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
}
