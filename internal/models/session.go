package models

import "time"

// Session is server-side proof of an admin login, referenced via a cookie.
type Session struct {
	ID        string    `json:"-"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at the given instant.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
