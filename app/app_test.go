package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stsysd/folio/config"
	"github.com/stsysd/folio/model"
	"github.com/stsysd/folio/store"
	"github.com/stsysd/folio/store/storetest"
	"github.com/stsysd/folio/view"
)

type note struct {
	level Level
	msg   string
}

type recorder struct{ notes []note }

func (r *recorder) Notify(level Level, msg string) { r.notes = append(r.notes, note{level, msg}) }

func (r *recorder) last() note {
	if len(r.notes) == 0 {
		return note{}
	}
	return r.notes[len(r.notes)-1]
}

type scriptedDialog struct {
	confirm  bool
	text     string
	cancel   bool
	asked    []string
	prompted []string
}

func (d *scriptedDialog) Confirm(msg string) bool {
	d.asked = append(d.asked, msg)
	return d.confirm
}

func (d *scriptedDialog) PromptText(msg string) (string, bool) {
	d.prompted = append(d.prompted, msg)
	return d.text, !d.cancel
}

var now = time.Date(2025, 5, 21, 14, 30, 0, 0, time.UTC)

func testConfig() *config.Config {
	return &config.Config{
		Store:         config.StoreMemory,
		Port:          "8080",
		AdminPassword: config.DefaultAdminPassword,
		SessionTTL:    24 * time.Hour,
	}
}

func newTestApp(t *testing.T, s store.Store) (*App, *recorder, *scriptedDialog) {
	t.Helper()
	rec := &recorder{}
	dlg := &scriptedDialog{confirm: true}
	a := New(context.Background(), s, testConfig(), rec, dlg, WithClock(func() time.Time { return now }))
	return a, rec, dlg
}

func loggedIn(t *testing.T, s store.Store) (*App, *recorder, *scriptedDialog) {
	t.Helper()
	a, rec, dlg := newTestApp(t, s)
	require.NoError(t, a.Login(context.Background(), "admin123"))
	return a, rec, dlg
}

func TestLoginNotifies(t *testing.T) {
	ctx := context.Background()
	a, rec, _ := newTestApp(t, store.NewMemoryStore())

	err := a.Login(ctx, "nope")
	assert.True(t, model.IsAuthorization(err))
	assert.Equal(t, note{LevelWarning, "wrong password"}, rec.last())

	require.NoError(t, a.Login(ctx, "admin123"))
	assert.Equal(t, LevelSuccess, rec.last().level)

	require.NoError(t, a.Logout(ctx))
	assert.Equal(t, note{LevelInfo, "Admin mode disabled"}, rec.last())
	assert.False(t, a.Gate.IsAuthorized())
}

func TestSessionSurvivesRestart(t *testing.T) {
	s := store.NewMemoryStore()
	loggedIn(t, s)

	again, _, _ := newTestApp(t, s)
	assert.True(t, again.Gate.IsAuthorized())
}

func TestSaveProject(t *testing.T) {
	ctx := context.Background()

	t.Run("anonymous", func(t *testing.T) {
		a, rec, _ := newTestApp(t, store.NewMemoryStore())
		_, err := a.SaveProject(ctx, model.Draft{Title: "t", Description: "d"})
		assert.True(t, model.IsAuthorization(err))
		assert.Equal(t, LevelWarning, rec.last().level)
	})

	t.Run("invalid", func(t *testing.T) {
		a, rec, _ := loggedIn(t, store.NewMemoryStore())
		_, err := a.SaveProject(ctx, model.Draft{Title: "t"})
		assert.True(t, model.IsValidation(err))
		assert.Equal(t, note{LevelWarning, "description is required"}, rec.last())
	})

	t.Run("add then update", func(t *testing.T) {
		a, rec, _ := loggedIn(t, store.NewMemoryStore())
		p, err := a.SaveProject(ctx, model.Draft{Title: "t", Description: "d"})
		require.NoError(t, err)
		assert.Equal(t, note{LevelSuccess, "Project added"}, rec.last())

		d := model.DraftOf(p)
		d.Title = "t2"
		_, err = a.SaveProject(ctx, d)
		require.NoError(t, err)
		assert.Equal(t, note{LevelSuccess, "Project updated"}, rec.last())
	})

	t.Run("storage failure is swallowed", func(t *testing.T) {
		faulty := storetest.NewFaulty(store.NewMemoryStore())
		a, rec, _ := loggedIn(t, faulty)
		faulty.FailSaves(true)

		p, err := a.SaveProject(ctx, model.Draft{Title: "t", Description: "d"})
		require.NoError(t, err)
		assert.NotZero(t, p.ID)
		assert.Equal(t, LevelError, rec.last().level)
		assert.Len(t, a.Projects.List(), 1)
	})
}

func TestDeleteProject(t *testing.T) {
	ctx := context.Background()
	a, rec, dlg := loggedIn(t, store.NewMemoryStore())
	p, err := a.SaveProject(ctx, model.Draft{Title: "t", Description: "d"})
	require.NoError(t, err)

	dlg.confirm = false
	done, err := a.DeleteProject(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, []string{DeleteConfirmation}, dlg.asked)
	assert.Len(t, a.Projects.List(), 1)

	dlg.confirm = true
	done, err = a.DeleteProject(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, done)
	assert.Empty(t, a.Projects.List())
	assert.Equal(t, note{LevelSuccess, "Project deleted"}, rec.last())

}

func TestDeleteAbsentProjectIsNoop(t *testing.T) {
	ctx := context.Background()
	a, rec, dlg := loggedIn(t, store.NewMemoryStore())
	p, err := a.SaveProject(ctx, model.Draft{Title: "t", Description: "d"})
	require.NoError(t, err)

	dlg.confirm = true
	done, err := a.DeleteProject(ctx, p.ID+1)
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, []string{DeleteConfirmation}, dlg.asked)
	assert.Equal(t, note{LevelSuccess, "Project deleted"}, rec.last())
	assert.Len(t, a.Projects.List(), 1)
}

func TestDeleteProjectAnonymousDoesNotAsk(t *testing.T) {
	a, _, dlg := newTestApp(t, store.NewMemoryStore())
	_, err := a.DeleteProject(context.Background(), 1)
	assert.True(t, model.IsAuthorization(err))
	assert.Empty(t, dlg.asked)
}

func TestClearAllData(t *testing.T) {
	ctx := context.Background()
	a, rec, dlg := loggedIn(t, store.NewMemoryStore())
	_, err := a.SaveProject(ctx, model.Draft{Title: "t", Description: "d"})
	require.NoError(t, err)

	dlg.confirm = false
	done, err := a.ClearAllData(ctx)
	require.NoError(t, err)
	assert.False(t, done)
	assert.Len(t, a.Projects.List(), 1)

	dlg.confirm = true
	done, err = a.ClearAllData(ctx)
	require.NoError(t, err)
	assert.True(t, done)
	assert.Empty(t, a.Projects.List())
	assert.Equal(t, note{LevelSuccess, "All data deleted"}, rec.last())
}

func TestChangeCredential(t *testing.T) {
	ctx := context.Background()
	a, _, dlg := loggedIn(t, store.NewMemoryStore())

	dlg.cancel = true
	changed, err := a.ChangeCredential(ctx)
	require.NoError(t, err)
	assert.False(t, changed)

	dlg.cancel = false
	dlg.text = "abc"
	_, err = a.ChangeCredential(ctx)
	assert.True(t, model.IsValidation(err))

	dlg.text = "s3cret"
	changed, err = a.ChangeCredential(ctx)
	require.NoError(t, err)
	assert.True(t, changed)

	require.NoError(t, a.Logout(ctx))
	assert.Error(t, a.Login(ctx, "admin123"))
	assert.NoError(t, a.Login(ctx, "s3cret"))
}

func TestExportImport(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	a, _, _ := loggedIn(t, store.NewMemoryStore())
	for _, title := range []string{"A", "B"} {
		_, err := a.SaveProject(ctx, model.Draft{Title: title, Description: "d", Technologies: []string{"Go"}})
		require.NoError(t, err)
	}

	path, err := a.Export(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "portfolio-backup-2025-05-21.json"), path)
	_, err = os.Stat(path)
	require.NoError(t, err)

	b, rec, _ := loggedIn(t, store.NewMemoryStore())
	n, err := b.Import(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, note{LevelSuccess, "Imported 2 projects"}, rec.last())
	assert.Equal(t, a.Projects.List(), b.Projects.List())

	_, err = b.Import(ctx, filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Equal(t, LevelError, rec.last().level)
}

func TestExportAnonymous(t *testing.T) {
	a, _, _ := newTestApp(t, store.NewMemoryStore())
	_, err := a.Export(context.Background(), t.TempDir())
	assert.True(t, model.IsAuthorization(err))
}

func TestSaveNow(t *testing.T) {
	ctx := context.Background()
	faulty := storetest.NewFaulty(store.NewMemoryStore())
	a, rec, _ := loggedIn(t, faulty)

	saves := faulty.Saves()
	require.NoError(t, a.SaveNow(ctx))
	assert.Equal(t, saves+1, faulty.Saves())
	assert.Equal(t, note{LevelSuccess, "Data saved"}, rec.last())
}

func TestTheme(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	a, _, _ := newTestApp(t, s)

	assert.Equal(t, ThemeLight, a.Theme(ctx))
	theme, err := a.ToggleTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, theme)
	assert.Equal(t, ThemeDark, a.Theme(ctx))

	raw, ok, err := s.Load(ctx, store.KeyTheme)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `"dark"`, string(raw))

	theme, err = a.ToggleTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, theme)

	assert.True(t, model.IsValidation(a.SetTheme(ctx, "sepia")))
}

func TestView(t *testing.T) {
	ctx := context.Background()
	a, _, _ := loggedIn(t, store.NewMemoryStore())
	for _, d := range []model.Draft{
		{Title: "Shop", Description: "store", Category: "web", Technologies: []string{"Go"}},
		{Title: "Notes", Description: "app", Category: "mobile", Status: "in-progress", Technologies: []string{"Kotlin"}},
	} {
		_, err := a.SaveProject(ctx, d)
		require.NoError(t, err)
	}

	vm := a.View(view.Query{Category: "web"})
	require.Len(t, vm.Cards, 1)
	assert.Equal(t, "Shop", vm.Cards[0].Title)
	assert.True(t, vm.Cards[0].Editable)
	assert.Equal(t, 2, vm.Stats.Total, "stats cover every project")
	assert.Equal(t, 1, vm.Stats.Active)
	assert.Len(t, vm.Cloud, 2)

	require.NoError(t, a.Logout(ctx))
	vm = a.View(view.Query{})
	assert.False(t, vm.Authorized)
	assert.False(t, vm.Cards[0].Editable)
}
