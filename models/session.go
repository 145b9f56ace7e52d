package models

import "time"

// Session is the authenticated principal of the client. It is persisted in
// the local store so the CLI and the daemon share it.
type Session struct {
	UserID    int64     `json:"user_id"`
	Login     string    `json:"login"`
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ExpiresWithin reports whether the session token expires before now+skew.
// A zero ExpiresAt means the expiry is unknown and the token is treated as
// expiring.
func (s Session) ExpiresWithin(now time.Time, skew time.Duration) bool {
	if s.ExpiresAt.IsZero() {
		return true
	}
	return !now.Add(skew).Before(s.ExpiresAt)
}
