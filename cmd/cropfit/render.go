package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/arloliu/cropfit/suitability"
)

const (
	barWidth      = 20
	maxNameColumn = 24
)

var (
	headerColor    = color.New(color.Bold)
	predictedColor = color.New(color.FgCyan, color.Bold)
	highColor      = color.New(color.FgGreen)
	mediumColor    = color.New(color.FgYellow)
	lowColor       = color.New(color.Faint)
)

// renderRecommendation prints the predicted crop followed by the top
// entries of the report as an aligned table.
func renderRecommendation(out io.Writer, rec suitability.Recommendation, top int) {
	fmt.Fprintf(out, "Predicted crop: %s\n", predictedColor.Sprint(rec.Predicted.Name))

	report := rec.Report.Top(top)
	if len(report) == 0 {
		fmt.Fprintln(out, "no suitability report: the model cannot be queried for neighbors")
		return
	}

	nameWidth := runewidth.StringWidth("Crop")
	for _, e := range report {
		nameWidth = max(nameWidth, runewidth.StringWidth(truncate(e.Name, maxNameColumn)))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, headerColor.Sprintf("%3s  %s  %11s", "#", runewidth.FillRight("Crop", nameWidth), "Suitability"))
	for i, e := range report {
		name := runewidth.FillRight(truncate(e.Name, maxNameColumn), nameWidth)
		c := probabilityColor(e.Probability)
		fmt.Fprintf(out, "%3d  %s  %11s  %s\n", i+1, name, c.Sprintf("%.2f", e.Probability), c.Sprint(bar(e.Probability, barWidth)))
	}
}

func renderJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

func probabilityColor(p float64) *color.Color {
	switch {
	case p >= 75:
		return highColor
	case p >= 40:
		return mediumColor
	default:
		return lowColor
	}
}

// bar draws p (0-100) as a horizontal bar of the given width.
func bar(p float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(math.Round(p / 100 * float64(width)))
	filled = min(max(filled, 0), width)

	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}

	return runewidth.Truncate(value, width, "...")
}

func decodeJSON(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	return dec.Decode(v)
}
