package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stsysd/folio/db"
)

// SQLiteStore はSQLiteを使用したStoreの実装です。
type SQLiteStore struct {
	conn    *sql.DB
	queries *db.Queries
	now     func() time.Time
}

// NewSQLiteStore はdataDirのfolio.dbを開き（なければ作成し）、マイグレーションを実行します。
func NewSQLiteStore(dataDir string) (*SQLiteStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "folio.db")
	conn, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}

	if err := db.Migrate(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize database tables: %w", err)
	}

	return &SQLiteStore{
		conn:    conn,
		queries: db.New(conn),
		now:     time.Now,
	}, nil
}

// Load は指定されたキーの値を取得します。
func (s *SQLiteStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.queries.GetValue(ctx, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, storageError("load", key, err)
	}
	return []byte(value), true, nil
}

// Save は指定されたキーに値を保存します（既存なら更新）。
func (s *SQLiteStore) Save(ctx context.Context, key string, value []byte) error {
	err := s.queries.PutValue(ctx, db.PutValueParams{
		Key:       key,
		Value:     string(value),
		UpdatedAt: s.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return storageError("save", key, err)
	}
	return nil
}

// Delete は指定されたキーを削除します。
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.queries.DeleteValue(ctx, key); err != nil {
		return storageError("delete", key, err)
	}
	return nil
}

// Close はデータベース接続を閉じます。
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}
