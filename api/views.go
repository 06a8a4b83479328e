package api

import (
	"net/http"
	"time"

	"github.com/stsysd/folio/model"
	"github.com/stsysd/folio/view"
)

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	params := NewListProjectsParams(r)
	all := s.projects.List()
	vm := view.Render(
		view.Filter(all, params.Query),
		s.gate.IsAuthorized(),
		view.ComputeStats(all),
		view.TechnologyCloud(all),
	)
	s.writeJSON(w, http.StatusOK, vm)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, view.ComputeStats(s.projects.List()))
}

func (s *Server) handleTechnologies(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, view.TechnologyCloud(s.projects.List()))
}

func (s *Server) handleTechnologiesSVG(w http.ResponseWriter, r *http.Request) {
	svg := view.CloudSVG(view.TechnologyCloud(s.projects.List()), nil)
	writeSVG(w, svg)
}

// ActivityParams represents parameters of the activity graph.
type ActivityParams struct {
	DateRange *model.DateRange
}

// NewActivityParams reads the optional from/to bounds.
func NewActivityParams(r *http.Request, now func() time.Time) (*ActivityParams, error) {
	query := r.URL.Query()
	dateRange, err := model.NewDateRange(query.Get("from"), query.Get("to"), now())
	if err != nil {
		return nil, model.NewValidationError(err.Error())
	}
	return &ActivityParams{DateRange: dateRange}, nil
}

func (s *Server) handleActivitySVG(w http.ResponseWriter, r *http.Request) {
	params, err := NewActivityParams(r, s.now)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeSVG(w, view.ActivitySVG(s.projects.List(), params.DateRange))
}

func writeSVG(w http.ResponseWriter, svg string) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write([]byte(svg))
}
