package view

import "github.com/stsysd/folio/model"

// Stats are the aggregate counters of the portfolio.
type Stats struct {
	Total        int `json:"total"`
	Technologies int `json:"technologies"` // distinct, case-sensitive
	Active       int `json:"active"`       // status in-progress
}

// ComputeStats counts projects, distinct technologies and active projects.
func ComputeStats(projects []model.Project) Stats {
	techs := map[string]struct{}{}
	s := Stats{Total: len(projects)}
	for _, p := range projects {
		for _, t := range p.Technologies {
			techs[t] = struct{}{}
		}
		if model.Status(p.Status) == model.StatusInProgress {
			s.Active++
		}
	}
	s.Technologies = len(techs)
	return s
}
