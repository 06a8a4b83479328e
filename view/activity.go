package view

import (
	"slices"
	"time"

	"github.com/stsysd/folio/heatmap"
	"github.com/stsysd/folio/model"
)

// ActivityData counts projects created per day between from and to,
// inclusive, in ascending date order. Days without projects are left
// out.
func ActivityData(projects []model.Project, from, to time.Time) []heatmap.Data {
	loc := from.Location()
	counts := map[time.Time]int{}
	for _, p := range projects {
		created := p.CreatedAt
		if created.IsZero() {
			created = p.Date
		}
		if created.Before(from) || created.After(to) {
			continue
		}
		y, m, d := created.In(loc).Date()
		counts[time.Date(y, m, d, 0, 0, 0, 0, loc)]++
	}

	data := make([]heatmap.Data, 0, len(counts))
	for day, n := range counts {
		data = append(data, heatmap.Data{Date: day, Count: n})
	}
	slices.SortFunc(data, func(a, b heatmap.Data) int {
		return a.Date.Compare(b.Date)
	})
	return data
}

// ActivitySVG renders the creation activity over r as a yearly heatmap.
func ActivitySVG(projects []model.Project, r *model.DateRange) string {
	return heatmap.GenerateYearlySVG(ActivityData(projects, r.From(), r.To()), &heatmap.Options{
		Title: "Projects created",
		From:  r.From(),
		To:    r.To(),
	})
}
