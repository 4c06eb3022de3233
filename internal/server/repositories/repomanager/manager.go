// Package repomanager vends repository implementations bound to a DBTX and
// owns database schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"insightboard/internal/dbx"
	"insightboard/internal/server/repositories/notes"
	"insightboard/internal/server/repositories/refreshtokens"
	"insightboard/internal/server/repositories/users"
)

// RepositoryManager abstracts the concrete storage backend. Services request
// repositories through it, passing either the shared *sql.DB or a
// transactional handle.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Notes(db dbx.DBTX) notes.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
