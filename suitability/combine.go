package suitability

import (
	"cmp"
	"math"
	"slices"

	"github.com/arloliu/cropfit/names"
)

// Combine sums neighbor and baseline evidence per class, normalizes the sums
// with Percentages and builds a Report sorted by probability descending, ties
// in ascending ClassID. Names come from table, falling back to the decimal
// ClassID. precision is the number of decimals probabilities are rounded to
// before sorting; a negative precision disables rounding.
//
// Both evidence slices must have the same length.
func Combine(neighbor, baseline Evidence, table *names.Table, precision int) Report {
	combined := make([]float64, len(neighbor))
	for c := range combined {
		combined[c] = neighbor[c] + baseline[c]
	}

	return rank(Percentages(combined), table, precision)
}

// Percentages maps combined scores to suitability percentages in place and
// returns the slice: combined/max*200, clipped to [0, 100]. When the maximum
// is not positive every percentage is 0.
func Percentages(combined []float64) []float64 {
	peak := Evidence(combined).Max()
	if peak <= 0 {
		clear(combined)
		return combined
	}

	for c, v := range combined {
		combined[c] = clip(v/peak*percentScale, 0, maxPercent)
	}

	return combined
}

func rank(percentages []float64, table *names.Table, precision int) Report {
	report := make(Report, len(percentages))
	for c, p := range percentages {
		report[c] = Entry{
			Label:       ClassID(c),
			Name:        table.Resolve(c),
			Probability: round(p, precision),
		}
	}

	// Entries start in ascending ClassID order; a stable sort keeps that
	// order among equal probabilities.
	slices.SortStableFunc(report, func(a, b Entry) int {
		return cmp.Compare(b.Probability, a.Probability)
	})

	return report
}

func clip(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func round(v float64, precision int) float64 {
	if precision < 0 {
		return v
	}
	scale := math.Pow10(precision)

	return math.Round(v*scale) / scale
}
