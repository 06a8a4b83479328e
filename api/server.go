// Package api はfolioのAPIサーバー実装を提供します。
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/stsysd/folio/app"
	"github.com/stsysd/folio/auth"
	"github.com/stsysd/folio/backup"
	"github.com/stsysd/folio/logging"
	"github.com/stsysd/folio/model"
	"github.com/stsysd/folio/portfolio"
	"github.com/stsysd/folio/store"
)

// warningHeader は変更がメモリ上にのみ反映され、永続化されなかった理由を伝えます。
const warningHeader = "X-Folio-Warning"

// maxBodySize はバックアップを含むJSONリクエストボディの上限です。
const maxBodySize = 8 << 20

// Server はAPIサーバーの構造体です。
type Server struct {
	router  *http.ServeMux
	handler http.Handler

	store    store.Store
	gate     *auth.Gate
	projects *portfolio.Repository
	backup   *backup.Exporter

	registry *prometheus.Registry
	metrics  *metrics
	now      func() time.Time
	log      zerolog.Logger
}

// ErrorResponse はエラーレスポンスの構造体です。
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// Option はServerの設定を変更します。
type Option func(*Server)

// WithClock はtime.Nowを置き換えます。
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithLogger はロガーを設定します。
func WithLogger(l zerolog.Logger) Option {
	return func(s *Server) { s.log = l }
}

// NewServer はaのコンポーネントを使う新しいAPIサーバーインスタンスを生成します。
func NewServer(a *app.App, opts ...Option) *Server {
	s := &Server{
		router:   http.NewServeMux(),
		store:    a.Store,
		gate:     a.Gate,
		projects: a.Projects,
		backup:   a.Backup,
		registry: prometheus.NewRegistry(),
		now:      time.Now,
		log:      logging.Component("api"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.metrics = newMetrics(s.registry)
	s.metrics.trackProjects(len(s.projects.List()))
	s.projects.OnChange(func(ps []model.Project) { s.metrics.trackProjects(len(ps)) })
	s.routes()
	s.handler = s.requestID(s.accessLog(s.router))
	return s
}

// routes はAPIエンドポイントのルーティングを設定します。
func (s *Server) routes() {
	s.router.HandleFunc("GET /healthz", s.handleHealthCheck)
	s.router.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	// Project endpoints
	s.router.HandleFunc("GET /api/v0/projects", s.handleListProjects)
	s.router.HandleFunc("GET /api/v0/projects/{project_id}", s.handleGetProject)
	s.router.Handle("POST /api/v0/projects", s.adminOnly(s.handleCreateProject))
	s.router.Handle("PUT /api/v0/projects/{project_id}", s.adminOnly(s.handleUpdateProject))
	s.router.Handle("DELETE /api/v0/projects/{project_id}", s.adminOnly(s.handleDeleteProject))

	// Derived views
	s.router.HandleFunc("GET /api/v0/view", s.handleView)
	s.router.HandleFunc("GET /api/v0/stats", s.handleStats)
	s.router.HandleFunc("GET /api/v0/technologies", s.handleTechnologies)

	// Graph endpoints - support both with and without .svg extension
	s.router.HandleFunc("GET /p/technologies.svg", s.handleTechnologiesSVG)
	s.router.HandleFunc("GET /p/technologies", s.handleTechnologiesSVG)
	s.router.HandleFunc("GET /p/activity.svg", s.handleActivitySVG)
	s.router.HandleFunc("GET /p/activity", s.handleActivitySVG)

	// 管理者セッション
	s.router.HandleFunc("GET /api/v0/session", s.handleGetSession)
	s.router.HandleFunc("POST /api/v0/session", s.handleLogin)
	s.router.HandleFunc("DELETE /api/v0/session", s.handleLogout)
	s.router.Handle("PUT /api/v0/credential", s.adminOnly(s.handleChangeCredential))

	// バックアップと全削除
	s.router.Handle("GET /api/v0/export", s.adminOnly(s.handleExport))
	s.router.Handle("POST /api/v0/import", s.adminOnly(s.handleImport))
	s.router.Handle("POST /api/v0/bulk-deletion", s.adminOnly(s.handleBulkDeletion))

	s.router.HandleFunc("GET /api/v0/theme", s.handleGetTheme)
	s.router.HandleFunc("PUT /api/v0/theme", s.handlePutTheme)
}

// ServeHTTP はServer構造体をhttp.Handlerとして実装します。
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Run はctxが終了するまでaddrで待ち受け、その後グレースフルに停止します。
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("server starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// handleHealthCheck はヘルスチェックエンドポイントのハンドラーです。
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("error encoding response")
	}
}

// writeJSONError はJSON形式でエラーレスポンスを返却します。
func (s *Server) writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	s.writeJSON(w, statusCode, ErrorResponse{Error: message, Code: statusCode})
}

// writeError はドメインのエラーをステータスコードに変換して返却します。
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case model.IsValidation(err):
		s.writeJSONError(w, err.Error(), http.StatusBadRequest)
	case model.IsAuthorization(err):
		s.writeJSONError(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, model.ErrProjectNotFound):
		s.writeJSONError(w, err.Error(), http.StatusNotFound)
	default:
		s.log.Error().Err(err).Str("request_id", RequestID(r.Context())).Msg("request failed")
		s.writeJSONError(w, "internal server error", http.StatusInternalServerError)
	}
}

// failed は更新処理のエラーを返却し、ハンドラーを中断すべきかを返します。
// ストアへの書き込み失敗では中断しません。変更はメモリ上に残り、
// レスポンスに警告ヘッダーを付けます。
func (s *Server) failed(w http.ResponseWriter, r *http.Request, err error) bool {
	if err == nil {
		return false
	}
	if model.IsStorage(err) {
		s.log.Error().Err(err).Str("request_id", RequestID(r.Context())).Msg("change not persisted")
		w.Header().Set(warningHeader, "change kept in memory only: "+err.Error())
		return false
	}
	s.writeError(w, r, err)
	return true
}

// decodeJSON はリクエストボディをvにデコードします。
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return model.NewValidationError("invalid request body: " + err.Error())
	}
	return nil
}
