package api

import (
	"fmt"
	"net/http"

	"github.com/stsysd/folio/model"
	"github.com/stsysd/folio/view"
)

// ListProjectsParams represents parameters for listing projects.
type ListProjectsParams struct {
	Query view.Query
}

// NewListProjectsParams creates parameters for project listing from HTTP request.
func NewListProjectsParams(r *http.Request) *ListProjectsParams {
	q := r.URL.Query()
	return &ListProjectsParams{
		Query: view.Query{Text: q.Get("q"), Category: q.Get("category")},
	}
}

// ListProjectsResponse is the body of a project listing.
type ListProjectsResponse struct {
	Projects []model.Project `json:"projects"`
	Total    int             `json:"total"`
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	params := NewListProjectsParams(r)
	projects := view.Filter(s.projects.List(), params.Query)
	s.writeJSON(w, http.StatusOK, ListProjectsResponse{Projects: projects, Total: len(projects)})
}

// ProjectIDParams represents the project addressed by the path.
type ProjectIDParams struct {
	ProjectID int64
}

// NewProjectIDParams reads the project id from the request path.
func NewProjectIDParams(r *http.Request) (*ProjectIDParams, error) {
	id, err := model.ParseProjectID(r.PathValue("project_id"))
	if err != nil {
		return nil, model.NewValidationError(err.Error())
	}
	return &ProjectIDParams{ProjectID: id}, nil
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	params, err := NewProjectIDParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	p, ok := s.projects.FindByID(params.ProjectID)
	if !ok {
		s.writeJSONError(w, fmt.Sprintf("Project with ID %d not found", params.ProjectID), http.StatusNotFound)
		return
	}
	s.writeJSON(w, http.StatusOK, p)
}

// NewDraftParams decodes a project draft from the request body.
func NewDraftParams(w http.ResponseWriter, r *http.Request) (model.Draft, error) {
	var d model.Draft
	if err := decodeJSON(w, r, &d); err != nil {
		return model.Draft{}, err
	}
	return d, nil
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	d, err := NewDraftParams(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	// IDは常にリポジトリが採番する
	d.ID = 0

	p, err := s.projects.Upsert(r.Context(), d)
	if s.failed(w, r, err) {
		return
	}
	s.writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	params, err := NewProjectIDParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if _, ok := s.projects.FindByID(params.ProjectID); !ok {
		s.writeJSONError(w, fmt.Sprintf("Project with ID %d not found", params.ProjectID), http.StatusNotFound)
		return
	}
	d, err := NewDraftParams(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	d.ID = params.ProjectID

	p, err := s.projects.Upsert(r.Context(), d)
	if s.failed(w, r, err) {
		return
	}
	s.writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	params, err := NewProjectIDParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if s.failed(w, r, s.projects.Delete(r.Context(), params.ProjectID)) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
