// Package view derives everything the presentation layer shows from a
// snapshot of the project list. Functions here never mutate their input.
package view

import (
	"strings"

	"github.com/stsysd/folio/model"
)

// Query is the search text and category filter chosen by the user.
type Query struct {
	Text     string `json:"q"`
	Category string `json:"category"`
}

// Search keeps projects whose title, description or any technology
// contains the query, ignoring case. Surrounding spaces are part of the
// query; a blank query keeps all.
func Search(projects []model.Project, query string) []model.Project {
	if strings.TrimSpace(query) == "" {
		return projects
	}
	q := strings.ToLower(query)
	out := make([]model.Project, 0, len(projects))
	for _, p := range projects {
		if matches(p, q) {
			out = append(out, p)
		}
	}
	return out
}

func matches(p model.Project, q string) bool {
	if strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Description), q) {
		return true
	}
	for _, t := range p.Technologies {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

// FilterByCategory keeps projects of exactly category. An empty
// category keeps all.
func FilterByCategory(projects []model.Project, category string) []model.Project {
	if category == "" {
		return projects
	}
	out := make([]model.Project, 0, len(projects))
	for _, p := range projects {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Filter applies the search and then the category filter.
func Filter(projects []model.Project, q Query) []model.Project {
	return FilterByCategory(Search(projects, q.Text), q.Category)
}
