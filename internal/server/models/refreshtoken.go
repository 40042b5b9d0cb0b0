package models

import "time"

// RefreshToken is an opaque, server-stored token exchanged for a new
// access/refresh pair.
type RefreshToken struct {
	UserID    int64
	Token     string
	Expires   time.Time
	CreatedAt time.Time
}
