// Package config はアプリケーション設定を管理します。
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ストアの種類
const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// DefaultAdminPassword は上書きが保存されるまで使われる管理者パスワードです。
const DefaultAdminPassword = "admin123"

// Config はアプリケーション全体の設定を保持します。
type Config struct {
	// SQLiteファイルを置くデータディレクトリのパス
	DataDir string

	// HTTPサーバーのアドレス
	Host string
	Port string

	// ストアの種類: sqlite, redis, memory
	Store       string
	RedisURL    string
	RedisPrefix string

	// 管理者モード
	AdminPassword string
	SessionTTL    time.Duration

	// ログ出力
	LogLevel  string
	LogPretty bool
}

// NewConfig は.envファイルと環境変数から設定を読み込み、Configインスタンスを生成します。
func NewConfig() (*Config, error) {
	// .envが無くてもエラーにしない
	_ = godotenv.Load()

	ttl, err := time.ParseDuration(getEnv("FOLIO_SESSION_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid FOLIO_SESSION_TTL: %w", err)
	}

	pretty, err := strconv.ParseBool(getEnv("FOLIO_LOG_PRETTY", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid FOLIO_LOG_PRETTY: %w", err)
	}

	cfg := &Config{
		DataDir:       getEnv("FOLIO_DATA_DIR", filepath.Join(".", "data")),
		Host:          getEnv("FOLIO_SERVER_HOST", "127.0.0.1"),
		Port:          getEnv("FOLIO_SERVER_PORT", "8080"),
		Store:         getEnv("FOLIO_STORE", StoreSQLite),
		RedisURL:      getEnv("FOLIO_REDIS_URL", "redis://localhost:6379/0"),
		RedisPrefix:   getEnv("FOLIO_REDIS_PREFIX", "folio:"),
		AdminPassword: getEnv("FOLIO_ADMIN_PASSWORD", DefaultAdminPassword),
		SessionTTL:    ttl,
		LogLevel:      getEnv("FOLIO_LOG_LEVEL", "info"),
		LogPretty:     pretty,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate は設定値を検証します。
func (c *Config) Validate() error {
	switch c.Store {
	case StoreSQLite:
		if c.DataDir == "" {
			return fmt.Errorf("FOLIO_DATA_DIR is required for the sqlite store")
		}
	case StoreRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("FOLIO_REDIS_URL is required for the redis store")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown store %q (want sqlite, redis or memory)", c.Store)
	}
	if c.Port == "" {
		return fmt.Errorf("FOLIO_SERVER_PORT is required")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("FOLIO_SESSION_TTL must be positive")
	}
	if c.AdminPassword == "" {
		return fmt.Errorf("FOLIO_ADMIN_PASSWORD must not be empty")
	}
	return nil
}

// Addr はHTTPサーバーの待ち受けアドレスを返します。
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
