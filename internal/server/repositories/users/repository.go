// Package users declares the server-side repository contract for user
// accounts.
package users

import (
	"context"

	"insightboard/internal/server/models"
)

type Repository interface {
	// Create inserts a new user and returns it with the generated id.
	// Inserting a duplicate email yields common.ErrEmailTaken.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByID returns the user with the given id, or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// GetByEmail returns the user registered under email, or
	// common.ErrorNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByUsername returns the user with the given username, or
	// common.ErrorNotFound.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}
