package api

import (
	"net/http"

	"github.com/stsysd/folio/backup"
)

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	snap, err := s.backup.Export(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+backup.FileName(s.now())+`"`)
	if err := backup.Write(w, snap); err != nil {
		s.log.Error().Err(err).Msg("error encoding backup")
	}
}

// ImportResponse はインポート結果のレスポンスです。
type ImportResponse struct {
	Imported int `json:"imported"`
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	n, err := s.backup.Import(r.Context(), r.Body)
	if s.failed(w, r, err) {
		return
	}
	s.writeJSON(w, http.StatusOK, ImportResponse{Imported: n})
}

// BulkDeletionParams は一括削除のリクエストボディです。
// Confirmは確認ダイアログの代わりで、trueである必要があります。
type BulkDeletionParams struct {
	Confirm bool `json:"confirm"`
}

func (s *Server) handleBulkDeletion(w http.ResponseWriter, r *http.Request) {
	var params BulkDeletionParams
	if err := decodeJSON(w, r, &params); err != nil {
		s.writeError(w, r, err)
		return
	}
	if !params.Confirm {
		s.writeJSONError(w, "confirm must be true", http.StatusBadRequest)
		return
	}

	count := len(s.projects.List())
	_, err := s.backup.ClearAllData(r.Context(), backup.ConfirmFunc(func(string) bool { return params.Confirm }))
	if s.failed(w, r, err) {
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]int{"deleted_count": count})
}
