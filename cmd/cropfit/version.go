package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arloliu/cropfit/internal/version"
)

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

var versionFormat string

func init() {
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show cropfit build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		payload := versionPayload{
			Tool:      "cropfit",
			Version:   valueOrUnknown(strings.TrimSpace(version.Version)),
			GitCommit: strings.TrimSpace(version.GitCommit),
			BuildDate: strings.TrimSpace(version.BuildDate),
		}

		switch strings.ToLower(versionFormat) {
		case "json":
			return renderJSON(cmd.OutOrStdout(), payload)
		case "pretty":
			renderVersionPretty(cmd.OutOrStdout(), payload)
			return nil
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", versionFormat)
		}
	},
}

var versionColor = color.New(color.FgGreen, color.Bold)

func renderVersionPretty(out io.Writer, p versionPayload) {
	fmt.Fprintf(out, "%s %s\n", p.Tool, versionColor.Sprint(p.Version))
	fmt.Fprintf(out, "commit: %s\n", valueOrUnknown(p.GitCommit))
	fmt.Fprintf(out, "built:  %s\n", valueOrUnknown(p.BuildDate))
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}

	return s
}
