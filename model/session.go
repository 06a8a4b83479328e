package model

import "time"

// Session は永続化される管理者セッションです。
// ExpiresはUnixミリ秒で保存されます。
type Session struct {
	IsAdmin bool  `json:"isAdmin"`
	Expires int64 `json:"expires"`
}

// NewSession はnowからttlの間有効な管理者セッションを生成します。
func NewSession(now time.Time, ttl time.Duration) Session {
	return Session{
		IsAdmin: true,
		Expires: now.Add(ttl).UnixMilli(),
	}
}

// ExpiresAt は有効期限をtime.Timeで返します。
func (s Session) ExpiresAt() time.Time {
	return time.UnixMilli(s.Expires)
}

// ValidAt はnowの時点でセッションが有効かどうかを返します。
func (s Session) ValidAt(now time.Time) bool {
	return s.IsAdmin && s.Expires > now.UnixMilli()
}
