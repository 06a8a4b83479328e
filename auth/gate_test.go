package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stsysd/folio/model"
	"github.com/stsysd/folio/store"
	"github.com/stsysd/folio/store/storetest"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 5, 21, 14, 30, 0, 0, time.UTC)}
}

func newTestGate(t *testing.T, s store.Store, clock *fakeClock) *Gate {
	t.Helper()
	return NewGate(s, "admin123", WithClock(clock.Now))
}

func TestLoginSuccess(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	clock := newClock()
	g := newTestGate(t, s, clock)

	assert.False(t, g.IsAuthorized())
	require.NoError(t, g.Login(ctx, "admin123"))
	assert.True(t, g.IsAuthorized())

	var rec model.Session
	ok, err := store.LoadJSON(ctx, s, store.KeySession, &rec)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, rec.IsAdmin)
	assert.Equal(t, clock.Now().Add(24*time.Hour).UnixMilli(), rec.Expires)

	exp, ok := g.ExpiresAt()
	assert.True(t, ok)
	assert.Equal(t, rec.ExpiresAt(), exp)
}

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	g := newTestGate(t, s, newClock())

	err := g.Login(ctx, "guess")
	require.Error(t, err)
	assert.True(t, model.IsAuthorization(err))
	assert.False(t, g.IsAuthorized())

	_, ok, err := s.Load(ctx, store.KeySession)
	require.NoError(t, err)
	assert.False(t, ok, "no session must be written on a failed login")

	// unthrottled: the next correct attempt succeeds
	require.NoError(t, g.Login(ctx, "admin123"))
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	g := newTestGate(t, s, newClock())

	require.NoError(t, g.Login(ctx, "admin123"))
	require.NoError(t, g.Logout(ctx))
	assert.False(t, g.IsAuthorized())
	assert.Error(t, g.Require())

	_, ok, err := s.Load(ctx, store.KeySession)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRestoreValidSession(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	clock := newClock()

	require.NoError(t, newTestGate(t, s, clock).Login(ctx, "admin123"))
	clock.Advance(23 * time.Hour)

	g := newTestGate(t, s, clock)
	g.Restore(ctx)
	assert.True(t, g.IsAuthorized())
	assert.NoError(t, g.Require())
}

func TestRestoreExpiredSession(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	clock := newClock()

	past := model.Session{IsAdmin: true, Expires: clock.Now().Add(-time.Minute).UnixMilli()}
	require.NoError(t, store.SaveJSON(ctx, s, store.KeySession, past))

	g := newTestGate(t, s, clock)
	g.Restore(ctx)
	assert.False(t, g.IsAuthorized())

	_, ok, err := s.Load(ctx, store.KeySession)
	require.NoError(t, err)
	assert.False(t, ok, "stale record is purged")
}

func TestRestoreMalformedSession(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	require.NoError(t, s.Save(ctx, store.KeySession, []byte(`{"isAdmin":`)))

	g := newTestGate(t, s, newClock())
	g.Restore(ctx)
	assert.False(t, g.IsAuthorized())
}

func TestSessionExpiresWhileRunning(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	g := NewGate(store.NewMemoryStore(), "admin123", WithClock(clock.Now), WithSessionTTL(time.Hour))

	require.NoError(t, g.Login(ctx, "admin123"))
	clock.Advance(time.Hour)
	assert.False(t, g.IsAuthorized())
}

func TestChangeCredential(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	clock := newClock()
	g := newTestGate(t, s, clock)

	err := g.ChangeCredential(ctx, "newpass")
	assert.True(t, model.IsAuthorization(err), "anonymous callers cannot change the credential")

	require.NoError(t, g.Login(ctx, "admin123"))

	err = g.ChangeCredential(ctx, "abc")
	require.Error(t, err)
	assert.True(t, model.IsValidation(err))

	require.NoError(t, g.ChangeCredential(ctx, "newpass"))
	assert.True(t, g.IsAuthorized(), "open session survives a credential change")

	require.NoError(t, g.Logout(ctx))
	assert.Error(t, g.Login(ctx, "admin123"))
	assert.NoError(t, g.Login(ctx, "newpass"))

	// the override persists independently of the session
	other := newTestGate(t, s, clock)
	assert.NoError(t, other.Login(ctx, "newpass"))
}

func TestCredentialLengthCountsCharacters(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"three ascii", "abc", false},
		{"four ascii", "abcd", true},
		{"two multibyte", "äö", false},
		{"three multibyte", "パスワ", false},
		{"four multibyte", "äöüß", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			g := newTestGate(t, store.NewMemoryStore(), newClock())
			require.NoError(t, g.Login(ctx, "admin123"))

			err := g.ChangeCredential(ctx, tt.value)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.True(t, model.IsValidation(err), "got %v", err)
		})
	}
}

func TestLoginStorageFailure(t *testing.T) {
	ctx := context.Background()
	faulty := storetest.NewFaulty(store.NewMemoryStore())
	g := newTestGate(t, faulty, newClock())

	faulty.FailSaves(true)
	err := g.Login(ctx, "admin123")
	require.Error(t, err)
	assert.True(t, model.IsStorage(err))
	assert.True(t, g.IsAuthorized(), "memory state wins until the next successful write")
}

func TestUnreadableCredentialFallsBackToDefault(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	require.NoError(t, s.Save(ctx, store.KeyCredential, []byte(`nope`)))

	g := newTestGate(t, s, newClock())
	assert.NoError(t, g.Login(ctx, "admin123"))
}
