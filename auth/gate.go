// Package auth implements the admin gate of the portfolio.
//
// The gate is an unauthenticated client-side check: the plaintext
// credential is compared in the same process that enforces it, and
// anyone with access to the store can read or replace it.
package auth

import (
	"context"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/stsysd/folio/logging"
	"github.com/stsysd/folio/model"
	"github.com/stsysd/folio/store"
)

// DefaultSessionTTL is the validity window of a new session.
const DefaultSessionTTL = 24 * time.Hour

// MinCredentialLength is the shortest accepted credential.
const MinCredentialLength = 4

// Gate decides whether the caller is the admin.
type Gate struct {
	store             store.Store
	defaultCredential string
	ttl               time.Duration
	now               func() time.Time
	log               zerolog.Logger

	mu      sync.Mutex
	session *model.Session
}

// Option configures a Gate.
type Option func(*Gate)

// WithSessionTTL sets the validity window of new sessions.
func WithSessionTTL(ttl time.Duration) Option {
	return func(g *Gate) { g.ttl = ttl }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(g *Gate) { g.now = now }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(g *Gate) { g.log = l }
}

// NewGate creates an Anonymous gate. defaultCredential is used until an
// override is saved. Call Restore to pick up a stored session.
func NewGate(s store.Store, defaultCredential string, opts ...Option) *Gate {
	g := &Gate{
		store:             s,
		defaultCredential: defaultCredential,
		ttl:               DefaultSessionTTL,
		now:               time.Now,
		log:               logging.Component("auth"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Restore reads the stored session and authorizes only if it is still
// valid. An expired record is purged from the store.
func (g *Gate) Restore(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.session = nil
	var s model.Session
	ok, err := store.LoadJSON(ctx, g.store, store.KeySession, &s)
	if err != nil {
		g.log.Warn().Err(err).Msg("ignoring unreadable session record")
		return
	}
	if !ok {
		return
	}
	if !s.ValidAt(g.now()) {
		g.log.Debug().Time("expires", s.ExpiresAt()).Msg("purging stale session record")
		if err := g.store.Delete(ctx, store.KeySession); err != nil {
			g.log.Warn().Err(err).Msg("failed to purge stale session record")
		}
		return
	}
	g.session = &s
	g.log.Info().Time("expires", s.ExpiresAt()).Msg("admin session restored")
}

// IsAuthorized reports whether an unexpired admin session is active.
func (g *Gate) IsAuthorized() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.authorizedLocked()
}

func (g *Gate) authorizedLocked() bool {
	return g.session != nil && g.session.ValidAt(g.now())
}

// Require returns an AuthorizationError unless the caller is the admin.
func (g *Gate) Require() error {
	if !g.IsAuthorized() {
		return model.NewAuthorizationError("admin mode required")
	}
	return nil
}

// ExpiresAt returns the expiry of the active session.
func (g *Gate) ExpiresAt() (time.Time, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.authorizedLocked() {
		return time.Time{}, false
	}
	return g.session.ExpiresAt(), true
}

// Login opens an admin session when password matches the current
// credential. Attempts are not throttled.
//
// If the session cannot be written the gate is still Authorized for
// this process and the *model.StorageError is returned.
func (g *Gate) Login(ctx context.Context, password string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if password != g.credential(ctx) {
		g.log.Info().Msg("login rejected")
		return model.NewAuthorizationError("wrong password")
	}

	s := model.NewSession(g.now(), g.ttl)
	g.session = &s
	g.log.Info().Time("expires", s.ExpiresAt()).Msg("admin session opened")

	return store.SaveJSON(ctx, g.store, store.KeySession, s)
}

// Logout closes the session and deletes its record.
func (g *Gate) Logout(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.session = nil
	g.log.Info().Msg("admin session closed")
	return g.store.Delete(ctx, store.KeySession)
}

// ChangeCredential stores a new admin credential. Only the admin may
// change it, and sessions already open stay valid.
func (g *Gate) ChangeCredential(ctx context.Context, value string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.authorizedLocked() {
		return model.NewAuthorizationError("admin mode required")
	}
	if utf8.RuneCountInString(value) < MinCredentialLength {
		return model.NewValidationError("password must be at least 4 characters")
	}
	if err := store.SaveJSON(ctx, g.store, store.KeyCredential, value); err != nil {
		return err
	}
	g.log.Info().Msg("admin credential changed")
	return nil
}

// credential returns the override, or the default when there is none
// or it cannot be read.
func (g *Gate) credential(ctx context.Context) string {
	var override string
	ok, err := store.LoadJSON(ctx, g.store, store.KeyCredential, &override)
	if err != nil {
		g.log.Warn().Err(err).Msg("using default credential")
		return g.defaultCredential
	}
	if !ok {
		return g.defaultCredential
	}
	return override
}
