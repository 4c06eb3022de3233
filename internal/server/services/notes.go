package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"insightboard/internal/common"
	"insightboard/internal/server/models"
	"insightboard/internal/server/repositories/repomanager"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// PublicNotesPage is one page of the global public listing.
type PublicNotesPage struct {
	Notes        []*models.Note
	PageNumber   int
	PageSize     int
	TotalRecords int
}

// NoteService implements note CRUD with ownership-scoped authorization and
// the public read paths.
type NoteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewNoteService constructs a NoteService.
func NewNoteService(db *sql.DB, m repomanager.RepositoryManager) *NoteService {
	return &NoteService{db: db, repomanager: m}
}

// Create stores a new note owned by userID.
func (s *NoteService) Create(ctx context.Context, userID, title, content string, isPublic bool) (*models.Note, error) {
	repo := s.repomanager.Notes(s.db)
	note, err := repo.Create(ctx, &models.Note{Title: title, Content: content, OwnerID: userID, IsPublic: isPublic})
	if err != nil {
		return nil, fmt.Errorf("error creating note: %w", err)
	}
	return note, nil
}

// ListByOwner returns all notes of the calling user, newest first.
func (s *NoteService) ListByOwner(ctx context.Context, userID string) ([]*models.Note, error) {
	return s.repomanager.Notes(s.db).ListByOwner(ctx, userID)
}

// Update rewrites title and content of a note. Only the owner may do so.
func (s *NoteService) Update(ctx context.Context, noteID, userID, title, content string) error {
	note, err := s.canMutate(ctx, noteID, userID)
	if err != nil {
		return err
	}
	note.Title = title
	note.Content = content
	return s.repomanager.Notes(s.db).Update(ctx, note)
}

// Delete removes a note. Only the owner may do so.
func (s *NoteService) Delete(ctx context.Context, noteID, userID string) error {
	if _, err := s.canMutate(ctx, noteID, userID); err != nil {
		return err
	}
	return s.repomanager.Notes(s.db).Delete(ctx, noteID)
}

// SetVisibility flips the public flag of a note. Only the owner may do so.
func (s *NoteService) SetVisibility(ctx context.Context, noteID, userID string, isPublic bool) error {
	if _, err := s.canMutate(ctx, noteID, userID); err != nil {
		return err
	}
	return s.repomanager.Notes(s.db).SetVisibility(ctx, noteID, isPublic)
}

// ListPublicByUsername returns the public notes of the named user, newest
// first. An unknown username yields common.ErrorNotFound.
func (s *NoteService) ListPublicByUsername(ctx context.Context, username string) ([]*models.Note, error) {
	user, err := s.repomanager.Users(s.db).GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.repomanager.Notes(s.db).ListPublicByOwner(ctx, user.ID)
}

// ListPublicPaged returns one page of all public notes. Only newest-first
// ordering exists; unrecognized sortBy values fall back to it rather than
// erroring.
func (s *NoteService) ListPublicPaged(ctx context.Context, pageNumber, pageSize int, sortBy string) (*PublicNotesPage, error) {
	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}

	// created_at descending is the only meaningful order; every sortBy value
	// maps to it.
	_ = sortBy

	offset := (pageNumber - 1) * pageSize
	list, total, err := s.repomanager.Notes(s.db).ListPublicPaged(ctx, offset, pageSize)
	if err != nil {
		return nil, err
	}
	return &PublicNotesPage{
		Notes:        list,
		PageNumber:   pageNumber,
		PageSize:     pageSize,
		TotalRecords: total,
	}, nil
}

// canMutate is the single ownership predicate applied by every mutation:
// the note must exist and belong to the acting user.
func (s *NoteService) canMutate(ctx context.Context, noteID, userID string) (*models.Note, error) {
	if _, err := uuid.Parse(noteID); err != nil {
		return nil, common.ErrInvalidID
	}
	note, err := s.repomanager.Notes(s.db).GetByID(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if note.OwnerID != userID {
		return nil, common.ErrForbidden
	}
	return note, nil
}
