package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arloliu/cropfit/internal/config"
	"github.com/arloliu/cropfit/internal/version"
)

var rootCmd = &cobra.Command{
	Use:           "cropfit",
	Short:         "Crop recommendation and suitability scoring",
	Long:          `cropfit predicts the best crop for a field from soil and climate measurements and ranks every known crop by suitability.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupGlobals(cmd)
	},
}

// Populated by setupGlobals before any subcommand runs.
var (
	cfg    config.Config
	logger = slog.New(slog.DiscardHandler)
)

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(packCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("config", "", "config file (default ./"+config.DefaultFile+" if present)")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log debug information to stderr")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

// setupGlobals loads the config file, applies global flag overrides and
// configures color and logging.
func setupGlobals(cmd *cobra.Command) error {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadOptional(config.DefaultFile)
	}
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("color") {
		if cfg.Color, err = cmd.Flags().GetString("color"); err != nil {
			return err
		}
	}
	useColor, err := colorEnabled(cfg.Color, isTerminal(os.Stdout))
	if err != nil {
		return err
	}
	color.NoColor = !useColor

	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return err
	}
	if verbose {
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	return nil
}

func colorEnabled(mode string, tty bool) (bool, error) {
	switch strings.TrimSpace(strings.ToLower(mode)) {
	case "", "auto":
		return tty, nil
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// modelPath resolves the model file from the --model flag or the config.
func modelPath(cmd *cobra.Command) (string, error) {
	path, err := cmd.Flags().GetString("model")
	if err != nil {
		return "", err
	}
	if path == "" {
		path = cfg.Model
	}
	if path == "" {
		return "", fmt.Errorf("no model given: pass --model or set model in %s", config.DefaultFile)
	}

	return path, nil
}
