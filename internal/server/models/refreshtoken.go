package models

import "time"

// RefreshToken is one link of a rotation chain. Rows are never deleted:
// redeemed tokens stay behind with Used=true as an audit trail.
type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	CreatedAt time.Time
	ExpiresAt time.Time
	Used      bool
	Revoked   bool
}

// Active reports whether the token may still be redeemed at time now.
func (t *RefreshToken) Active(now time.Time) bool {
	return !t.Used && !t.Revoked && t.ExpiresAt.After(now)
}
