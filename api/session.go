package api

import (
	"net/http"
	"time"

	"github.com/stsysd/folio/app"
)

// SessionResponse は管理者セッションの状態を表すレスポンスです。
type SessionResponse struct {
	Authorized bool       `json:"authorized"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
}

func (s *Server) sessionResponse() SessionResponse {
	exp, ok := s.gate.ExpiresAt()
	if !ok {
		return SessionResponse{}
	}
	return SessionResponse{Authorized: true, ExpiresAt: &exp}
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.sessionResponse())
}

// PasswordParams はログインとパスワード変更のリクエストボディです。
type PasswordParams struct {
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var params PasswordParams
	if err := decodeJSON(w, r, &params); err != nil {
		s.writeError(w, r, err)
		return
	}
	if s.failed(w, r, s.gate.Login(r.Context(), params.Password)) {
		return
	}
	s.writeJSON(w, http.StatusOK, s.sessionResponse())
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if s.failed(w, r, s.gate.Logout(r.Context())) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleChangeCredential(w http.ResponseWriter, r *http.Request) {
	var params PasswordParams
	if err := decodeJSON(w, r, &params); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.gate.ChangeCredential(r.Context(), params.Password); err != nil {
		// パスワードはストアにのみ保持されるため、書き込みに失敗した場合は何も変わらない
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ThemeParams はテーマ設定です。
type ThemeParams struct {
	Theme string `json:"theme"`
}

func (s *Server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	theme, err := app.LoadTheme(r.Context(), s.store)
	if err != nil {
		s.log.Warn().Err(err).Msg("using default theme")
	}
	s.writeJSON(w, http.StatusOK, ThemeParams{Theme: theme})
}

func (s *Server) handlePutTheme(w http.ResponseWriter, r *http.Request) {
	var params ThemeParams
	if err := decodeJSON(w, r, &params); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := app.SaveTheme(r.Context(), s.store, params.Theme); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, params)
}
