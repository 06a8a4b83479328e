// Package store は、ポートフォリオの状態を永続化するキーバリューストアを提供します。
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stsysd/folio/config"
	"github.com/stsysd/folio/model"
)

// ストアに保存される各データのキー
const (
	KeyProjects   = "portfolio_projects"
	KeyCredential = "portfolio_admin_password"
	KeySession    = "portfolio_session"
	KeyTheme      = "theme"
)

// Store はキーごとにJSONドキュメントを読み書きするインターフェースです。
// エラーはすべて*model.StorageErrorです。
type Store interface {
	// Load は指定されたキーの値を取得します。存在しない場合okはfalseです。
	Load(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Save は指定されたキーに値を保存します。既存の値は置き換えます。
	Save(ctx context.Context, key string, value []byte) error
	// Delete は指定されたキーを削除します。存在しないキーの削除はエラーになりません。
	Delete(ctx context.Context, key string) error
	// Close はストアの接続を閉じます。
	Close() error
}

// LoadJSON は指定されたキーの値をvにデコードします。
// vとしてデコードできない値は読み込みの失敗として扱います。
func LoadJSON(ctx context.Context, s Store, key string, v any) (bool, error) {
	data, ok, err := s.Load(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, storageError("load", key, fmt.Errorf("malformed JSON: %w", err))
	}
	return true, nil
}

// SaveJSON はvをエンコードして指定されたキーに保存します。
func SaveJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return storageError("save", key, err)
	}
	return s.Save(ctx, key, data)
}

// Open はcfgで選択されたストアを作成します。
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Store {
	case config.StoreSQLite:
		s, err := NewSQLiteStore(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.StoreRedis:
		s, err := DialRedis(ctx, cfg.RedisURL, cfg.RedisPrefix)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.StoreMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}

func storageError(op, key string, err error) error {
	return &model.StorageError{Op: op, Key: key, Err: err}
}
