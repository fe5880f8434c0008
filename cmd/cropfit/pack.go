package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arloliu/cropfit/artifact"
	"github.com/arloliu/cropfit/format"
)

var (
	packIn          string
	packOut         string
	packCompression string
)

func init() {
	packCmd.Flags().StringVar(&packIn, "in", "", "JSON model export from the training pipeline")
	packCmd.Flags().StringVar(&packOut, "out", "", "artifact file to write (.cfit)")
	packCmd.Flags().StringVar(&packCompression, "compression", "", "payload compression (none|zstd|s2|lz4, default from config)")
	_ = packCmd.MarkFlagRequired("in")
	_ = packCmd.MarkFlagRequired("out")
}

var packCmd = &cobra.Command{
	Use:   "pack",
	Short: "Pack a JSON model export into a model artifact",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		name := cfg.Pack.Compression
		if cmd.Flags().Changed("compression") {
			name = packCompression
		}
		compression, err := format.ParseCompression(name)
		if err != nil {
			return err
		}

		m, err := readExport(packIn)
		if err != nil {
			return err
		}

		info, err := artifact.SaveFile(packOut, m, artifact.WithCompression(compression))
		if err != nil {
			return err
		}
		logger.Debug("packed artifact", "in", packIn, "out", packOut, "checksum", fmt.Sprintf("%016x", info.Checksum))

		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s: %d points, %d classes, %s %d → %d bytes (%.1f%%)\n",
			packOut, len(m.Points), m.Classes(), info.Compression, info.RawSize, info.StoredSize, info.Ratio()*100)

		return nil
	},
}

func readExport(path string) (*artifact.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := artifact.ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}
