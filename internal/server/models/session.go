package models

import "time"

// Session is a server-side record proving a token is still honored.
type Session struct {
	ID        int64
	Token     string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}
