// Package heatmap renders GitHub-style activity heatmaps as SVG.
package heatmap

import (
	"time"
)

// Data holds the date and count for each day.
type Data struct {
	Date  time.Time
	Count int
}

// Options configures rendering parameters.
type Options struct {
	CellSize    int       // size of each day cell (px)
	CellPadding int       // padding between cells (px)
	Colors      []string  // array of N CSS colors for levels 0..N-1
	FontSize    int       // font size for month labels (px)
	FontFamily  string    // font family for labels
	Title       string    // optional caption above the grid
	From        time.Time // first day drawn; defaults to the first data point
	To          time.Time // last day drawn; defaults to the last data point
}

// DefaultOptions returns the GitHub-like palette and geometry.
func DefaultOptions() Options {
	return Options{
		CellSize:    12,
		CellPadding: 2,
		FontSize:    10,
		FontFamily:  "sans-serif",
		Colors:      []string{"#ebedf0", "#9be9a8", "#40c463", "#30a14e", "#216e39"},
	}
}
