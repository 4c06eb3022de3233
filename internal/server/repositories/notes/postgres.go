package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"insightboard/internal/common"
	"insightboard/internal/dbx"
	"insightboard/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, note *models.Note) (*models.Note, error) {

	query :=
		`INSERT INTO notes (title, content, owner_id, is_public)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		note.Title, note.Content, note.OwnerID, note.IsPublic).Scan(&note.ID, &note.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return note, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Note, error) {
	query :=
		`SELECT id, title, content, created_at, owner_id, is_public FROM notes
		 WHERE id = $1
		 `

	note := &models.Note{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&note.ID, &note.Title, &note.Content, &note.CreatedAt, &note.OwnerID, &note.IsPublic)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return note, nil
}

func (r *PostgresRepository) Update(ctx context.Context, note *models.Note) error {
	query :=
		`UPDATE notes SET title = $1, content = $2
		 WHERE id = $3
		 `

	if _, err := r.db.ExecContext(ctx, query, note.Title, note.Content, note.ID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SetVisibility(ctx context.Context, id string, isPublic bool) error {
	query :=
		`UPDATE notes SET is_public = $1
		 WHERE id = $2
		 `

	if _, err := r.db.ExecContext(ctx, query, isPublic, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query :=
		`DELETE FROM notes
		 WHERE id = $1
		 `

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Note, error) {
	query :=
		`SELECT id, title, content, created_at, owner_id, is_public FROM notes
		 WHERE owner_id = $1
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return scanNotes(rows)
}

func (r *PostgresRepository) ListPublicByOwner(ctx context.Context, ownerID string) ([]*models.Note, error) {
	query :=
		`SELECT id, title, content, created_at, owner_id, is_public FROM notes
		 WHERE owner_id = $1 AND is_public
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return scanNotes(rows)
}

func (r *PostgresRepository) ListPublicPaged(ctx context.Context, offset, limit int) ([]*models.Note, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notes WHERE is_public`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	query :=
		`SELECT id, title, content, created_at, owner_id, is_public FROM notes
		 WHERE is_public
		 ORDER BY created_at DESC
		 OFFSET $1 LIMIT $2
		 `

	rows, err := r.db.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	list, err := scanNotes(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func scanNotes(rows *sql.Rows) ([]*models.Note, error) {
	list := make([]*models.Note, 0)
	for rows.Next() {
		note := &models.Note{}
		if err := rows.Scan(&note.ID, &note.Title, &note.Content, &note.CreatedAt, &note.OwnerID, &note.IsPublic); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		list = append(list, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return list, nil
}
