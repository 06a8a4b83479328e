// Package app wires the portfolio components together and exposes one
// handler per user action. Messages and dialogs are delegated to the
// caller through Notifier and Dialog.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/stsysd/folio/auth"
	"github.com/stsysd/folio/backup"
	"github.com/stsysd/folio/config"
	"github.com/stsysd/folio/logging"
	"github.com/stsysd/folio/model"
	"github.com/stsysd/folio/portfolio"
	"github.com/stsysd/folio/store"
	"github.com/stsysd/folio/view"
)

// Level is the severity of a notification.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notifier shows a short message to the user.
type Notifier interface {
	Notify(level Level, message string)
}

// Dialog asks the user for input.
type Dialog interface {
	Confirm(message string) bool
	// PromptText returns false when the user cancels.
	PromptText(message string) (string, bool)
}

// Themes.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// DeleteConfirmation is the question asked before deleting a project.
const DeleteConfirmation = "Delete this project?"

// App is the context object shared by every handler.
type App struct {
	Store    store.Store
	Gate     *auth.Gate
	Projects *portfolio.Repository
	Backup   *backup.Exporter

	notifier Notifier
	dialog   Dialog
	now      func() time.Time
	log      zerolog.Logger
}

// Option configures an App.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now in every component.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New builds the components on s, restores the session and loads the
// projects. The App owns s and closes it in Close.
func New(ctx context.Context, s store.Store, cfg *config.Config, n Notifier, d Dialog, opts ...Option) *App {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	gate := auth.NewGate(s, cfg.AdminPassword,
		auth.WithSessionTTL(cfg.SessionTTL),
		auth.WithClock(o.now),
	)
	repo := portfolio.NewRepository(s, gate, portfolio.WithClock(o.now))
	a := &App{
		Store:    s,
		Gate:     gate,
		Projects: repo,
		Backup:   backup.NewExporter(repo, gate, backup.WithClock(o.now)),
		notifier: n,
		dialog:   d,
		now:      o.now,
		log:      logging.Component("app"),
	}

	gate.Restore(ctx)
	repo.Load(ctx)
	return a
}

// Close releases the store.
func (a *App) Close() error {
	return a.Store.Close()
}

// report notifies the outcome of an action. Validation and
// authorization errors are returned; a failed store write is reported
// and swallowed because the change is kept in memory.
func (a *App) report(err error, success string) error {
	switch {
	case err == nil:
		if success != "" {
			a.notifier.Notify(LevelSuccess, success)
		}
		return nil
	case model.IsStorage(err):
		a.log.Error().Err(err).Msg("change kept in memory only")
		a.notifier.Notify(LevelError, "Failed to save data")
		return nil
	case model.IsValidation(err), model.IsAuthorization(err), errors.Is(err, model.ErrProjectNotFound):
		a.notifier.Notify(LevelWarning, err.Error())
		return err
	default:
		a.notifier.Notify(LevelError, err.Error())
		return err
	}
}

// Login enables admin mode.
func (a *App) Login(ctx context.Context, password string) error {
	return a.report(a.Gate.Login(ctx, password), "Admin mode enabled")
}

// Logout disables admin mode.
func (a *App) Logout(ctx context.Context) error {
	err := a.Gate.Logout(ctx)
	if err == nil {
		a.notifier.Notify(LevelInfo, "Admin mode disabled")
	}
	return a.report(err, "")
}

// SaveProject creates or updates a project from d.
func (a *App) SaveProject(ctx context.Context, d model.Draft) (model.Project, error) {
	_, existing := a.Projects.FindByID(d.ID)
	p, err := a.Projects.Upsert(ctx, d)
	msg := "Project added"
	if existing {
		msg = "Project updated"
	}
	if err := a.report(err, msg); err != nil {
		return model.Project{}, err
	}
	return p, nil
}

// DeleteProject removes a project after confirmation. It reports
// whether the deletion was confirmed; an absent id is confirmed and
// deleted as a no-op.
func (a *App) DeleteProject(ctx context.Context, id int64) (bool, error) {
	if err := a.Gate.Require(); err != nil {
		return false, a.report(err, "")
	}
	if !a.dialog.Confirm(DeleteConfirmation) {
		return false, nil
	}
	return true, a.report(a.Projects.Delete(ctx, id), "Project deleted")
}

// ClearAllData removes every project after confirmation.
func (a *App) ClearAllData(ctx context.Context) (bool, error) {
	done, err := a.Backup.ClearAllData(ctx, a.dialog)
	if !done && err == nil {
		return false, nil
	}
	return done, a.report(err, "All data deleted")
}

// ChangeCredential prompts for a new admin password and stores it.
// It reports false when the prompt is cancelled.
func (a *App) ChangeCredential(ctx context.Context) (bool, error) {
	if err := a.Gate.Require(); err != nil {
		return false, a.report(err, "")
	}
	v, ok := a.dialog.PromptText("New admin password:")
	if !ok {
		return false, nil
	}
	err := a.Gate.ChangeCredential(ctx, v)
	if err := a.report(err, "Password changed"); err != nil {
		return false, err
	}
	return true, nil
}

// Export writes a backup file into dir and returns its path.
func (a *App) Export(ctx context.Context, dir string) (string, error) {
	snap, err := a.Backup.Export(ctx)
	if err != nil {
		return "", a.report(err, "")
	}

	path := filepath.Join(dir, backup.FileName(a.now()))
	if err := writeFile(path, snap); err != nil {
		return "", a.report(err, "")
	}
	a.notifier.Notify(LevelSuccess, "Data exported")
	return path, nil
}

func writeFile(path string, snap model.Snapshot) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create backup file: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	return backup.Write(f, snap)
}

// Import restores a backup file and returns the number of projects.
func (a *App) Import(ctx context.Context, path string) (int, error) {
	if err := a.Gate.Require(); err != nil {
		return 0, a.report(err, "")
	}
	f, err := os.Open(path)
	if err != nil {
		return 0, a.report(fmt.Errorf("failed to open backup file: %w", err), "")
	}
	defer f.Close()

	n, err := a.Backup.Import(ctx, f)
	if err := a.report(err, fmt.Sprintf("Imported %d projects", n)); err != nil {
		return 0, err
	}
	return n, nil
}

// SaveNow writes the projects to the store again.
func (a *App) SaveNow(ctx context.Context) error {
	if err := a.Gate.Require(); err != nil {
		return a.report(err, "")
	}
	return a.report(a.Projects.Save(ctx), "Data saved")
}

// Theme returns the stored theme, light by default.
func (a *App) Theme(ctx context.Context) string {
	theme, err := LoadTheme(ctx, a.Store)
	if err != nil {
		a.log.Warn().Err(err).Msg("using default theme")
	}
	return theme
}

// SetTheme stores theme.
func (a *App) SetTheme(ctx context.Context, theme string) error {
	return a.report(SaveTheme(ctx, a.Store, theme), "")
}

// ToggleTheme switches between light and dark and returns the new theme.
func (a *App) ToggleTheme(ctx context.Context) (string, error) {
	next := ThemeDark
	if a.Theme(ctx) == ThemeDark {
		next = ThemeLight
	}
	return next, a.SetTheme(ctx, next)
}

// LoadTheme reads the theme preference. Anything but a known theme
// reads as light.
func LoadTheme(ctx context.Context, s store.Store) (string, error) {
	var theme string
	ok, err := store.LoadJSON(ctx, s, store.KeyTheme, &theme)
	if err != nil || !ok || (theme != ThemeLight && theme != ThemeDark) {
		return ThemeLight, err
	}
	return theme, nil
}

// SaveTheme writes the theme preference.
func SaveTheme(ctx context.Context, s store.Store, theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return model.NewValidationError("theme must be light or dark")
	}
	return store.SaveJSON(ctx, s, store.KeyTheme, theme)
}

// View renders the projects matching q. Stats and the cloud always
// cover the whole portfolio.
func (a *App) View(q view.Query) view.ViewModel {
	all := a.Projects.List()
	return view.Render(
		view.Filter(all, q),
		a.Gate.IsAuthorized(),
		view.ComputeStats(all),
		view.TechnologyCloud(all),
	)
}
