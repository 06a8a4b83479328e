package heatmap

import (
	"fmt"
	"html"
	"strings"
	"time"
)

const dateKey = "2006-01-02"

// GenerateYearlySVG returns an SVG string with one cell per day between
// opts.From and opts.To, one column per week starting on Sunday.
// Days missing from data are drawn with count 0. It returns "" when
// there is neither data nor an explicit range.
func GenerateYearlySVG(data []Data, opts *Options) string {
	o := DefaultOptions()
	if opts != nil {
		o = mergeOptions(o, *opts)
	}

	start, end := o.From, o.To
	if len(data) > 0 {
		if start.IsZero() {
			start = data[0].Date
			for _, d := range data {
				if d.Date.Before(start) {
					start = d.Date
				}
			}
		}
		if end.IsZero() {
			end = data[0].Date
			for _, d := range data {
				if d.Date.After(end) {
					end = d.Date
				}
			}
		}
	}
	if start.IsZero() || end.IsZero() {
		return ""
	}
	start = beginOfDay(start)
	end = beginOfDay(end.In(start.Location()))
	if end.Before(start) {
		return ""
	}

	counts := make(map[string]int, len(data))
	for _, d := range data {
		counts[d.Date.In(start.Location()).Format(dateKey)] += d.Count
	}

	// align first column to Sunday
	firstSunday := start.AddDate(0, 0, -int(start.Weekday()))
	weeks := daysBetween(firstSunday, end)/7 + 1

	titleHeight := 0
	if o.Title != "" {
		titleHeight = o.FontSize + 8
	}
	step := o.CellSize + o.CellPadding
	width := weeks*step + o.CellPadding
	height := 7*step + o.CellPadding + o.FontSize + 4 + titleHeight

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`+"\n", width, height)
	fmt.Fprintf(&sb, `  <style>.label{font-family:%s;font-size:%dpx;fill:#666}.title{font-family:%s;font-size:%dpx;fill:#333;font-weight:bold}</style>`+"\n",
		o.FontFamily, o.FontSize, o.FontFamily, o.FontSize)

	if o.Title != "" {
		fmt.Fprintf(&sb, `  <text x="%d" y="%d" class="title">%s</text>`+"\n",
			o.CellPadding, o.FontSize, html.EscapeString(o.Title))
	}

	// month labels
	lastMonth := time.Month(0)
	monthLabelY := o.FontSize + titleHeight
	for w := range weeks {
		current := firstSunday.AddDate(0, 0, w*7)
		if current.Day() <= 7 && current.Month() != lastMonth {
			fmt.Fprintf(&sb, `  <text x="%d" y="%d" class="label">%s</text>`+"\n",
				o.CellPadding+w*step, monthLabelY, current.Month().String()[:3])
			lastMonth = current.Month()
		}
	}

	supCount := 5
	for _, c := range counts {
		supCount = max(supCount, c+1)
	}

	for w := range weeks {
		for i := range 7 {
			current := firstSunday.AddDate(0, 0, w*7+i)
			if current.Before(start) || current.After(end) {
				continue
			}
			key := current.Format(dateKey)
			count := counts[key]
			color := o.Colors[level(count, supCount, len(o.Colors))]
			x := o.CellPadding + w*step
			y := o.CellPadding + o.FontSize + 4 + titleHeight + i*step

			fmt.Fprintf(&sb, `  <rect x="%d" y="%d" width="%d" height="%d" fill="%s" data-date="%s" data-count="%d">`+"\n",
				x, y, o.CellSize, o.CellSize, color, key, count)
			fmt.Fprintf(&sb, `    <title>%s: %d</title>`+"\n", current.Format("Jan 2, 2006"), count)
			sb.WriteString(`  </rect>` + "\n")
		}
	}

	sb.WriteString(`</svg>`)
	return sb.String()
}

// level maps count onto a palette of n colors. Zero always uses the
// first color; positive counts spread over the rest.
func level(count, supCount, n int) int {
	if count <= 0 || n < 2 {
		return 0
	}
	if n == 2 {
		return 1
	}
	l := (count-1)*(n-2)/(supCount-1) + 1
	return min(max(l, 1), n-1)
}

func mergeOptions(base, o Options) Options {
	if o.CellSize > 0 {
		base.CellSize = o.CellSize
	}
	if o.CellPadding > 0 {
		base.CellPadding = o.CellPadding
	}
	if len(o.Colors) > 0 {
		base.Colors = o.Colors
	}
	if o.FontSize > 0 {
		base.FontSize = o.FontSize
	}
	if o.FontFamily != "" {
		base.FontFamily = o.FontFamily
	}
	base.Title = o.Title
	base.From = o.From
	base.To = o.To
	return base
}

func beginOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}
