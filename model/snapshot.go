package model

import "time"

// SnapshotVersion はエクスポート形式の唯一のバージョンです。
const SnapshotVersion = "1.0"

// Snapshot はエクスポートファイルの内容です。
type Snapshot struct {
	Projects   []Project `json:"projects"`
	ExportDate time.Time `json:"exportDate"`
	Version    string    `json:"version"`
}

// NewSnapshot はnow時点のプロジェクトのスナップショットを生成します。
func NewSnapshot(projects []Project, now time.Time) Snapshot {
	if projects == nil {
		projects = []Project{}
	}
	return Snapshot{
		Projects:   projects,
		ExportDate: now,
		Version:    SnapshotVersion,
	}
}

// Validate はバージョンとすべてのプロジェクトを検証します。
func (s *Snapshot) Validate() error {
	if s.Version != SnapshotVersion {
		return NewValidationError("unsupported backup version: " + s.Version)
	}
	seen := make(map[int64]struct{}, len(s.Projects))
	for i := range s.Projects {
		if err := s.Projects[i].Validate(); err != nil {
			return err
		}
		if _, dup := seen[s.Projects[i].ID]; dup {
			return NewValidationError("duplicate project id in backup")
		}
		seen[s.Projects[i].ID] = struct{}{}
	}
	return nil
}
