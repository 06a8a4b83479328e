package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore はキーのプレフィックス付きでRedisに値を保存するStoreの実装です。
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore は既存のクライアントからRedisStoreを作成します。
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

// DialRedis はurlのサーバーに接続し、応答を確認します。
func DialRedis(ctx context.Context, url, prefix string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewRedisStore(client, prefix), nil
}

// Load は指定されたキーの値を取得します。
func (s *RedisStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, storageError("load", key, err)
	}
	return value, true, nil
}

// Save は指定されたキーに有効期限なしで値を保存します。
func (s *RedisStore) Save(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return storageError("save", key, err)
	}
	return nil
}

// Delete は指定されたキーを削除します。
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return storageError("delete", key, err)
	}
	return nil
}

// Close はクライアントを閉じます。
func (s *RedisStore) Close() error {
	return s.client.Close()
}
