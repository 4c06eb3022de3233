// Package notes declares the server-side repository contract for notes.
package notes

import (
	"context"

	"insightboard/internal/server/models"
)

type Repository interface {
	// Create inserts a new note and returns it with the generated id and
	// creation timestamp.
	Create(ctx context.Context, note *models.Note) (*models.Note, error)

	// GetByID returns the note with the given id, or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.Note, error)

	// Update rewrites title and content of an existing note.
	Update(ctx context.Context, note *models.Note) error

	// SetVisibility flips the is_public flag of a note.
	SetVisibility(ctx context.Context, id string, isPublic bool) error

	// Delete removes a note by id.
	Delete(ctx context.Context, id string) error

	// ListByOwner returns all notes of one owner, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Note, error)

	// ListPublicByOwner returns the public notes of one owner, newest first.
	ListPublicByOwner(ctx context.Context, ownerID string) ([]*models.Note, error)

	// ListPublicPaged returns one page of all public notes, newest first,
	// along with the total number of public notes.
	ListPublicPaged(ctx context.Context, offset, limit int) ([]*models.Note, int, error)
}
