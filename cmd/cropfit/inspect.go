package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/arloliu/cropfit/artifact"
	"github.com/arloliu/cropfit/feature"
)

var inspectJSON bool

func init() {
	inspectCmd.Flags().String("model", "", "model artifact (.cfit)")
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "print JSON instead of text")
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Describe a model artifact",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := modelPath(cmd)
		if err != nil {
			return err
		}

		m, info, err := artifact.LoadFile(path)
		if err != nil {
			return err
		}

		summary, err := summarize(path, m, info)
		if err != nil {
			return err
		}
		logger.Debug("loaded artifact", "path", path, "fingerprint", summary.Fingerprint)

		if inspectJSON {
			return renderJSON(cmd.OutOrStdout(), summary)
		}
		renderSummary(cmd.OutOrStdout(), summary)

		return nil
	},
}

type classSummary struct {
	Label    int                `json:"label"`
	Name     string             `json:"name"`
	Points   int                `json:"points"`
	Centroid map[string]float64 `json:"centroid,omitempty"` // raw units
}

type modelSummary struct {
	Path        string         `json:"path"`
	Version     uint8          `json:"version"`
	Compression string         `json:"compression"`
	StoredSize  int            `json:"stored_size"`
	RawSize     int            `json:"raw_size"`
	Checksum    string         `json:"checksum"`
	Fingerprint string         `json:"fingerprint"`
	Points      int            `json:"points"`
	Dim         int            `json:"dim"`
	Neighbors   int            `json:"neighbors"`
	Scaled      bool           `json:"scaled"`
	Classes     []classSummary `json:"classes"`
}

func summarize(path string, m *artifact.Model, info artifact.Info) (modelSummary, error) {
	clf, err := m.Classifier()
	if err != nil {
		return modelSummary{}, err
	}
	table, err := m.Names()
	if err != nil {
		return modelSummary{}, err
	}
	scaler, err := m.Scaler()
	if err != nil {
		return modelSummary{}, err
	}

	set := clf.References()
	s := modelSummary{
		Path:        path,
		Version:     info.Version,
		Compression: info.Compression.String(),
		StoredSize:  info.StoredSize,
		RawSize:     info.RawSize,
		Checksum:    fmt.Sprintf("%016x", info.Checksum),
		Fingerprint: fmt.Sprintf("%016x", set.Fingerprint()),
		Points:      set.Len(),
		Dim:         set.Dim(),
		Neighbors:   clf.K(),
		Scaled:      len(m.ScalerMean) > 0,
		Classes:     make([]classSummary, set.ClassCount()),
	}

	centroids := set.Centroids()
	for label := range s.Classes {
		cs := classSummary{
			Label:  label,
			Name:   table.Resolve(label),
			Points: set.ClassSize(label),
		}
		if c, ok := centroids.Get(label); ok {
			if v, err := feature.FromSlice(c); err == nil {
				raw := scaler.Inverse(v)
				cs.Centroid = make(map[string]float64, feature.Dim)
				for i, x := range raw {
					cs.Centroid[feature.Index(i).String()] = x
				}
			}
		}
		s.Classes[label] = cs
	}

	return s, nil
}

func renderSummary(out io.Writer, s modelSummary) {
	fmt.Fprintf(out, "%s %s\n", headerColor.Sprint("model:"), s.Path)
	fmt.Fprintf(out, "  format:      v%d, %s, %d bytes (%d raw)\n", s.Version, s.Compression, s.StoredSize, s.RawSize)
	fmt.Fprintf(out, "  checksum:    %s\n", s.Checksum)
	fmt.Fprintf(out, "  fingerprint: %s\n", s.Fingerprint)
	fmt.Fprintf(out, "  points:      %d x %d\n", s.Points, s.Dim)
	fmt.Fprintf(out, "  neighbors:   %d\n", s.Neighbors)
	fmt.Fprintf(out, "  scaled:      %t\n", s.Scaled)

	nameWidth := runewidth.StringWidth("Crop")
	for _, c := range s.Classes {
		nameWidth = max(nameWidth, runewidth.StringWidth(truncate(c.Name, maxNameColumn)))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, headerColor.Sprintf("%5s  %s  %6s  %s", "Label", runewidth.FillRight("Crop", nameWidth), "Points", "Centroid (raw)"))
	for _, c := range s.Classes {
		fmt.Fprintf(out, "%5d  %s  %6d  %s\n", c.Label, runewidth.FillRight(truncate(c.Name, maxNameColumn), nameWidth), c.Points, formatCentroid(c.Centroid))
	}
}

func formatCentroid(c map[string]float64) string {
	if len(c) == 0 {
		return "-"
	}

	parts := make([]string, 0, feature.Dim)
	for i := range feature.Dim {
		name := feature.Index(i).String()
		parts = append(parts, fmt.Sprintf("%s=%.1f", name, c[name]))
	}

	return strings.Join(parts, " ")
}
