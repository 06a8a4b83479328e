// Package portfolio keeps the ordered collection of projects.
package portfolio

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/stsysd/folio/logging"
	"github.com/stsysd/folio/model"
	"github.com/stsysd/folio/store"
)

// Authorizer gates every mutation.
type Authorizer interface {
	Require() error
}

// Listener is called with the new collection after every mutation.
type Listener func(projects []model.Project)

// Repository owns the project collection, newest first, and writes it
// through the store after every mutation.
//
// A failed write keeps the in-memory collection as the source of truth
// and is returned as a *model.StorageError once the mutation is applied.
type Repository struct {
	store store.Store
	auth  Authorizer
	now   func() time.Time
	log   zerolog.Logger

	mu        sync.RWMutex
	projects  []model.Project
	lastID    int64
	listeners []Listener
}

// Option configures a Repository.
type Option func(*Repository)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Repository) { r.log = l }
}

// NewRepository creates an empty repository. Call Load to read the
// stored collection.
func NewRepository(s store.Store, auth Authorizer, opts ...Option) *Repository {
	r := &Repository{
		store: s,
		auth:  auth,
		now:   time.Now,
		log:   logging.Component("portfolio"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load replaces the collection with the stored one. Unreadable data
// leaves the collection empty.
func (r *Repository) Load(ctx context.Context) {
	var projects []model.Project
	_, err := store.LoadJSON(ctx, r.store, store.KeyProjects, &projects)
	if err != nil {
		r.log.Warn().Err(err).Msg("starting with an empty portfolio")
		projects = nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects = projects
	r.lastID = 0
	for _, p := range projects {
		r.lastID = max(r.lastID, p.ID)
	}
	r.log.Debug().Int("projects", len(projects)).Msg("portfolio loaded")
}

// OnChange registers l to run after every mutation.
func (r *Repository) OnChange(l Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, l)
}

// List returns a copy of the collection, most recently created first.
func (r *Repository) List() []model.Project {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneAll(r.projects)
}

// FindByID returns the project with id.
func (r *Repository) FindByID(id int64) (model.Project, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.indexOf(id); i >= 0 {
		return r.projects[i].Clone(), true
	}
	return model.Project{}, false
}

// Upsert saves draft. A draft whose id matches a stored project replaces
// it in place and keeps its CreatedAt; any other draft becomes a new
// project at the front with a fresh id.
func (r *Repository) Upsert(ctx context.Context, draft model.Draft) (model.Project, error) {
	if err := r.auth.Require(); err != nil {
		return model.Project{}, err
	}
	draft = draft.Normalize()
	if err := draft.Validate(); err != nil {
		return model.Project{}, err
	}

	r.mu.Lock()
	now := r.now()
	var saved model.Project
	if i := r.indexOf(draft.ID); draft.ID != 0 && i >= 0 {
		saved = draft.Build(draft.ID, r.projects[i].CreatedAt, now)
		r.projects[i] = saved
		r.log.Info().Int64("id", saved.ID).Msg("project updated")
	} else {
		saved = draft.Build(r.nextID(now), time.Time{}, now)
		r.projects = append([]model.Project{saved}, r.projects...)
		r.log.Info().Int64("id", saved.ID).Msg("project added")
	}
	err := r.commit(ctx)
	return saved.Clone(), err
}

// Delete removes the project with id. An unknown id is not an error.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.auth.Require(); err != nil {
		return err
	}

	r.mu.Lock()
	if i := r.indexOf(id); i >= 0 {
		r.projects = append(r.projects[:i:i], r.projects[i+1:]...)
		r.log.Info().Int64("id", id).Msg("project deleted")
	}
	return r.commit(ctx)
}

// ClearAll removes every project.
func (r *Repository) ClearAll(ctx context.Context) error {
	if err := r.auth.Require(); err != nil {
		return err
	}

	r.mu.Lock()
	r.projects = nil
	r.log.Info().Msg("portfolio cleared")
	return r.commit(ctx)
}

// Replace swaps in a whole collection, e.g. from a backup.
func (r *Repository) Replace(ctx context.Context, projects []model.Project) error {
	if err := r.auth.Require(); err != nil {
		return err
	}
	snap := model.NewSnapshot(projects, time.Time{})
	if err := snap.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	r.projects = cloneAll(projects)
	for _, p := range r.projects {
		r.lastID = max(r.lastID, p.ID)
	}
	r.log.Info().Int("projects", len(projects)).Msg("portfolio replaced")
	return r.commit(ctx)
}

// Save writes the current collection again.
func (r *Repository) Save(ctx context.Context) error {
	if err := r.auth.Require(); err != nil {
		return err
	}
	r.mu.Lock()
	return r.commit(ctx)
}

// commit persists the collection and notifies listeners.
// It must be called with r.mu held and releases it.
func (r *Repository) commit(ctx context.Context) error {
	snapshot := cloneAll(r.projects)
	listeners := append([]Listener(nil), r.listeners...)
	err := store.SaveJSON(ctx, r.store, store.KeyProjects, snapshot)
	r.mu.Unlock()

	if err != nil {
		r.log.Error().Err(err).Msg("failed to save portfolio")
	}
	for _, l := range listeners {
		l(cloneAll(snapshot))
	}
	return err
}

// nextID returns a millisecond timestamp id greater than every id
// handed out so far.
func (r *Repository) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= r.lastID {
		id = r.lastID + 1
	}
	r.lastID = id
	return id
}

func (r *Repository) indexOf(id int64) int {
	for i := range r.projects {
		if r.projects[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneAll(in []model.Project) []model.Project {
	out := make([]model.Project, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}
