// Package backup exports, restores and wipes the portfolio.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/stsysd/folio/logging"
	"github.com/stsysd/folio/model"
	"github.com/stsysd/folio/portfolio"
)

// Confirmer asks the user an out-of-band yes/no question.
type Confirmer interface {
	Confirm(message string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(message string) bool

func (f ConfirmFunc) Confirm(message string) bool { return f(message) }

// ClearConfirmation is the question asked before wiping all projects.
const ClearConfirmation = "Delete ALL projects? This cannot be undone."

// Exporter works on whole-portfolio snapshots.
type Exporter struct {
	repo *portfolio.Repository
	auth portfolio.Authorizer
	now  func() time.Time
	log  zerolog.Logger
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) { e.now = now }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Exporter) { e.log = l }
}

// NewExporter creates an Exporter over repo.
func NewExporter(repo *portfolio.Repository, auth portfolio.Authorizer, opts ...Option) *Exporter {
	e := &Exporter{
		repo: repo,
		auth: auth,
		now:  time.Now,
		log:  logging.Component("backup"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export returns a snapshot of every project.
func (e *Exporter) Export(ctx context.Context) (model.Snapshot, error) {
	if err := e.auth.Require(); err != nil {
		return model.Snapshot{}, err
	}
	snap := model.NewSnapshot(e.repo.List(), e.now())
	e.log.Info().Int("projects", len(snap.Projects)).Msg("portfolio exported")
	return snap, nil
}

// FileName is the name of an export file written at now. The date is
// the UTC calendar date.
func FileName(now time.Time) string {
	return "portfolio-backup-" + now.UTC().Format("2006-01-02") + ".json"
}

// Write encodes snap as indented JSON.
func Write(w io.Writer, snap model.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	return nil
}

// Read decodes and validates an export file.
func Read(r io.Reader) (model.Snapshot, error) {
	var snap model.Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return model.Snapshot{}, model.NewValidationError("invalid backup file: " + err.Error())
	}
	if err := snap.Validate(); err != nil {
		return model.Snapshot{}, err
	}
	return snap, nil
}

// Import replaces every project with the content of an export file.
// A storage write error is returned after the collection is replaced.
func (e *Exporter) Import(ctx context.Context, r io.Reader) (int, error) {
	if err := e.auth.Require(); err != nil {
		return 0, err
	}
	snap, err := Read(r)
	if err != nil {
		return 0, err
	}
	err = e.repo.Replace(ctx, snap.Projects)
	if err != nil && !model.IsStorage(err) {
		return 0, err
	}
	e.log.Info().Int("projects", len(snap.Projects)).Time("exportDate", snap.ExportDate).Msg("portfolio imported")
	return len(snap.Projects), err
}

// ClearAllData wipes every project once c confirms. It reports whether
// the wipe happened; a declined confirmation changes nothing.
func (e *Exporter) ClearAllData(ctx context.Context, c Confirmer) (bool, error) {
	if err := e.auth.Require(); err != nil {
		return false, err
	}
	if !c.Confirm(ClearConfirmation) {
		e.log.Debug().Msg("clear declined")
		return false, nil
	}
	return true, e.repo.ClearAll(ctx)
}
