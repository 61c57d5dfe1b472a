// Command pztrace replays gesture scripts against a headless pinchzoom
// engine and reports the resulting events and transform. It is meant for
// tuning configs and reproducing gesture bugs without a touch screen.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/pinchzoom"
)

// Version is overridden at build time with -ldflags "-X main.Version=x.y.z".
var Version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "pztrace:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pztrace",
		Short: "Replay pinch-zoom gesture scripts headlessly",
		Long: `pztrace feeds a JSON or YAML gesture script into a pinchzoom engine driven
by a simulated frame clock and prints every lifecycle event with the
transform it produced.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return configureLogging(cmd)
		},
	}
	rootCmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log engine debug records to stderr")
	rootCmd.PersistentFlags().String("log-format", "text", "Log record format (text|json)")

	rootCmd.AddCommand(newRunCommand())
	return rootCmd
}

// configureLogging installs the engine logger selected by the persistent
// flags. Without --verbose the engine stays silent.
func configureLogging(cmd *cobra.Command) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	format, _ := cmd.Flags().GetString("log-format")
	if !verbose {
		pinchzoom.SetLogger(nil)
		return nil
	}
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}
	var h slog.Handler
	switch format {
	case "text":
		h = slog.NewTextHandler(cmd.ErrOrStderr(), opts)
	case "json":
		h = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	default:
		return fmt.Errorf("unknown --log-format %q (want text or json)", format)
	}
	pinchzoom.SetLogger(slog.New(h))
	return nil
}
