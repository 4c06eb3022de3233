// Package refreshtokens declares the server-side repository contract for the
// refresh-token ledger. Tokens are never deleted; redeemed and revoked rows
// remain as an audit trail of the rotation chain.
package refreshtokens

import (
	"context"
	"time"

	"insightboard/internal/server/models"
)

// Repository defines operations for issuing and redeeming refresh tokens.
type Repository interface {
	// Create stores a new unused, unrevoked token for userID with an expiry
	// of now+validity.
	Create(ctx context.Context, userID string, token string, validity time.Duration) error

	// Find looks up a token by its opaque secret string and returns the full
	// row. Implementations return common.ErrorNotFound when it is absent.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// MarkUsed flips the used flag of an active token. The update is
	// conditional on the token still being active, so of two concurrent
	// redemptions exactly one wins; the loser gets common.ErrInvalidToken.
	MarkUsed(ctx context.Context, token string) error
}
