package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arloliu/cropfit"
	"github.com/arloliu/cropfit/feature"
	"github.com/arloliu/cropfit/internal/config"
	"github.com/arloliu/cropfit/suitability"
)

var (
	recommendFields    feature.Measurements
	recommendTop       int
	recommendJSON      bool
	recommendInput     string
	recommendNoLimits  bool
	recommendWorkers   int
	measurementFlagSet = []string{"n", "p", "k", "temperature", "humidity", "ph", "rainfall"}
)

func init() {
	f := recommendCmd.Flags()
	f.String("model", "", "model artifact (.cfit)")
	f.Float64Var(&recommendFields.N, "n", 0, "nitrogen ratio in soil")
	f.Float64Var(&recommendFields.P, "p", 0, "phosphorous ratio in soil")
	f.Float64Var(&recommendFields.K, "k", 0, "potassium ratio in soil")
	f.Float64Var(&recommendFields.Temperature, "temperature", 0, "temperature in °C")
	f.Float64Var(&recommendFields.Humidity, "humidity", 0, "relative humidity in %")
	f.Float64Var(&recommendFields.PH, "ph", 0, "soil pH")
	f.Float64Var(&recommendFields.Rainfall, "rainfall", 0, "rainfall in mm")
	f.IntVar(&recommendTop, "top", 0, "show only the N most suitable crops (0 = all)")
	f.BoolVar(&recommendJSON, "json", false, "print JSON instead of a table")
	f.StringVar(&recommendInput, "input", "", "JSON file with an array of measurements to score in batch")
	f.BoolVar(&recommendNoLimits, "no-limits", false, "accept measurements outside the usual ranges")
	f.IntVar(&recommendWorkers, "workers", 0, "batch scoring workers (default from config)")
}

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend a crop and rank all crops by suitability",
	Example: `  cropfit recommend --model crops.cfit --n 90 --p 42 --k 43 \
      --temperature 20.9 --humidity 82 --ph 6.5 --rainfall 202.9
  cropfit recommend --model crops.cfit --input fields.json --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := modelPath(cmd)
		if err != nil {
			return err
		}

		rec, err := cropfit.Open(path, recommenderOptions()...)
		if err != nil {
			return err
		}

		top := cfg.Output.Top
		if cmd.Flags().Changed("top") {
			top = recommendTop
		}
		asJSON := cfg.Output.Format == config.FormatJSON
		if cmd.Flags().Changed("json") {
			asJSON = recommendJSON
		}

		if recommendInput != "" {
			return runBatch(cmd, rec, top, asJSON)
		}

		if missing := missingFlags(cmd, measurementFlagSet); len(missing) > 0 {
			return fmt.Errorf("missing measurements: --%s (or use --input)", strings.Join(missing, ", --"))
		}

		res, err := rec.Recommend(recommendFields)
		if err != nil {
			return err
		}
		res.Report = res.Report.Top(top)

		if asJSON {
			return renderJSON(cmd.OutOrStdout(), res)
		}
		renderRecommendation(cmd.OutOrStdout(), res, top)

		return nil
	},
}

func recommenderOptions() []cropfit.Option {
	opts := []cropfit.Option{
		cropfit.WithLogger(logger),
		cropfit.WithEngineOptions(
			suitability.WithNeighborCap(cfg.Scoring.NeighborCap),
			suitability.WithPrecision(cfg.Scoring.Precision),
		),
	}
	if recommendNoLimits {
		opts = append(opts, cropfit.WithoutRangeCheck())
	}

	return opts
}

func runBatch(cmd *cobra.Command, rec *cropfit.Recommender, top int, asJSON bool) error {
	fields, err := readMeasurements(recommendInput)
	if err != nil {
		return err
	}

	workers := cfg.Scoring.Workers
	if recommendWorkers > 0 {
		workers = recommendWorkers
	}

	results, err := rec.RecommendBatch(cmd.Context(), fields, workers)
	if err != nil {
		return err
	}
	for i := range results {
		results[i].Report = results[i].Report.Top(top)
	}

	if asJSON {
		return renderJSON(cmd.OutOrStdout(), results)
	}

	out := cmd.OutOrStdout()
	for i, res := range results {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, headerColor.Sprintf("Field %d", i+1))
		renderRecommendation(out, res, top)
	}

	return nil
}

func readMeasurements(path string) ([]feature.Measurements, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var fields []feature.Measurements
	if err := decodeJSON(f, &fields); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(fields) == 0 {
		return nil, errors.New(path + ": no measurements")
	}

	return fields, nil
}

func missingFlags(cmd *cobra.Command, names []string) []string {
	var missing []string
	for _, name := range names {
		if !cmd.Flags().Changed(name) {
			missing = append(missing, name)
		}
	}

	return missing
}
