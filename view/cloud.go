package view

import (
	"fmt"
	"html"
	"slices"
	"strings"

	"github.com/stsysd/folio/model"
)

// Technology cloud bounds. Weights are font sizes in rem.
const (
	CloudLimit = 15
	MinWeight  = 0.8
	MaxWeight  = 2.0
)

// CloudEntry is one technology of the cloud.
type CloudEntry struct {
	Name   string  `json:"name"`
	Count  int     `json:"count"`
	Weight float64 `json:"weight"`
}

// TechnologyCloud tallies every technology across projects and returns
// the CloudLimit most used, most used first. Ties keep the order in
// which technologies were first seen.
func TechnologyCloud(projects []model.Project) []CloudEntry {
	index := map[string]int{}
	var entries []CloudEntry
	for _, p := range projects {
		for _, t := range p.Technologies {
			i, ok := index[t]
			if !ok {
				i = len(entries)
				index[t] = i
				entries = append(entries, CloudEntry{Name: t})
			}
			entries[i].Count++
		}
	}

	slices.SortStableFunc(entries, func(a, b CloudEntry) int {
		return b.Count - a.Count
	})
	if len(entries) > CloudLimit {
		entries = entries[:CloudLimit]
	}
	if len(entries) == 0 {
		return []CloudEntry{}
	}

	maxCount := float64(entries[0].Count)
	for i := range entries {
		entries[i].Weight = MinWeight + float64(entries[i].Count)/maxCount*(MaxWeight-MinWeight)
	}
	return entries
}

// CloudOptions configures CloudSVG.
type CloudOptions struct {
	Width      int    // canvas width (px)
	BaseSize   int    // font size (px) of weight 1.0
	LineHeight int    // extra vertical space between rows (px)
	FontFamily string // font family for labels
	Color      string // CSS fill color
}

// DefaultCloudOptions returns the options used when none are given.
func DefaultCloudOptions() CloudOptions {
	return CloudOptions{
		Width:      480,
		BaseSize:   16,
		LineHeight: 8,
		FontFamily: "sans-serif",
		Color:      "#0d6efd",
	}
}

// CloudSVG lays the entries out left to right, wrapping at opts.Width.
// Font size scales with weight.
func CloudSVG(entries []CloudEntry, opts *CloudOptions) string {
	o := DefaultCloudOptions()
	if opts != nil {
		o = *opts
	}

	const pad = 8
	type word struct {
		e    CloudEntry
		size int
		x, y int
	}
	var (
		words      []word
		x, y       = pad, pad
		rowHeight  int
		lastBottom = pad
	)
	for _, e := range entries {
		size := int(float64(o.BaseSize)*e.Weight + 0.5)
		// rough advance width of a sans-serif glyph
		w := len([]rune(e.Name))*size*6/10 + size/2
		if x > pad && x+w > o.Width-pad {
			x = pad
			y += rowHeight + o.LineHeight
			rowHeight = 0
		}
		rowHeight = max(rowHeight, size)
		words = append(words, word{e: e, size: size, x: x, y: y})
		x += w
		lastBottom = y + rowHeight
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`+"\n", o.Width, lastBottom+pad)
	fmt.Fprintf(&sb, `  <style>.tech{font-family:%s;fill:%s}</style>`+"\n", o.FontFamily, o.Color)
	for _, w := range words {
		// baseline sits at the bottom of the row
		fmt.Fprintf(&sb, `  <text x="%d" y="%d" class="tech" font-size="%d" data-count="%d">%s<title>%s: %d</title></text>`+"\n",
			w.x, w.y+w.size, w.size, w.e.Count, html.EscapeString(w.e.Name), html.EscapeString(w.e.Name), w.e.Count)
	}
	sb.WriteString(`</svg>`)
	return sb.String()
}
