package view

import (
	"time"

	"github.com/stsysd/folio/model"
)

const (
	excerptLength  = 100
	maxTechBadges  = 3
	cardDateLayout = "Jan 2, 2006"
)

var categoryIcons = map[model.Category]string{
	model.CategoryWeb:     "fas fa-globe",
	model.CategoryMobile:  "fas fa-mobile-alt",
	model.CategoryDesktop: "fas fa-desktop",
	model.CategoryIoT:     "fas fa-microchip",
	model.CategoryTools:   "fas fa-tools",
}

var statusBadges = map[model.Status]string{
	model.StatusCompleted:  "success",
	model.StatusInProgress: "warning",
	model.StatusPlanned:    "info",
}

// Card is one project as the presentation layer draws it.
type Card struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	Icon          string   `json:"icon"`
	Badge         string   `json:"badge"`
	StatusLabel   string   `json:"statusLabel"`
	Excerpt       string   `json:"excerpt"`
	Technologies  []string `json:"technologies"`
	MoreTechCount int      `json:"moreTechCount"`
	Date          string   `json:"date"`
	GitHub        string   `json:"github,omitempty"`
	Demo          string   `json:"demo,omitempty"`
	Editable      bool     `json:"editable"`
}

// ViewModel is everything handed to the presentation layer.
type ViewModel struct {
	Cards      []Card       `json:"cards"`
	Empty      bool         `json:"empty"`
	Authorized bool         `json:"authorized"`
	Stats      Stats        `json:"stats"`
	Cloud      []CloudEntry `json:"cloud"`
}

// Render builds the view model of the visible projects.
func Render(projects []model.Project, authorized bool, stats Stats, cloud []CloudEntry) ViewModel {
	cards := make([]Card, 0, len(projects))
	for _, p := range projects {
		cards = append(cards, renderCard(p, authorized))
	}
	if cloud == nil {
		cloud = []CloudEntry{}
	}
	return ViewModel{
		Cards:      cards,
		Empty:      len(cards) == 0,
		Authorized: authorized,
		Stats:      stats,
		Cloud:      cloud,
	}
}

func renderCard(p model.Project, editable bool) Card {
	icon, badge := "fas fa-code", "secondary"
	if c := model.Category(p.Category); c.IsKnown() {
		icon = categoryIcons[c]
	}
	if st := model.Status(p.Status); st.IsKnown() {
		badge = statusBadges[st]
	}

	techs := p.Technologies
	more := 0
	if len(techs) > maxTechBadges {
		more = len(techs) - maxTechBadges
		techs = techs[:maxTechBadges]
	}

	return Card{
		ID:            p.ID,
		Title:         p.Title,
		Icon:          icon,
		Badge:         badge,
		StatusLabel:   statusLabel(p.Status),
		Excerpt:       excerpt(p.Description, excerptLength),
		Technologies:  append([]string{}, techs...),
		MoreTechCount: more,
		Date:          displayDate(p.Date),
		GitHub:        p.GitHub,
		Demo:          p.Demo,
		Editable:      editable,
	}
}

// statusLabel falls back to "Planned" for anything unknown.
func statusLabel(status string) string {
	switch model.Status(status) {
	case model.StatusInProgress:
		return "In progress"
	case model.StatusCompleted:
		return "Completed"
	default:
		return "Planned"
	}
}

func excerpt(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func displayDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(cardDateLayout)
}
