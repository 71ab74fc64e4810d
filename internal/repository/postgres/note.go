package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/gophnotes-server/internal/model"
)

var _ model.NoteStore = (*NoteRepository)(nil)

type NoteRepository struct {
	db Querier
}

func NewNoteRepository(db Querier) *NoteRepository {
	return &NoteRepository{
		db: db,
	}
}

func (r *NoteRepository) Create(ctx context.Context, note model.Note) (model.Note, error) {
	query := `INSERT INTO notes (owner_id, title, content)
			  VALUES ($1, $2, $3)
			  RETURNING id, owner_id, title, content, created_at, updated_at`

	var saved model.Note
	err := r.db.QueryRow(ctx, query, note.OwnerID, note.Title, note.Content).Scan(
		&saved.ID, &saved.OwnerID, &saved.Title, &saved.Content, &saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return model.Note{}, fmt.Errorf("failed to create note: %w", err)
	}

	return saved, nil
}

func (r *NoteRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Note, error) {
	query := `SELECT id, owner_id, title, content, created_at, updated_at
			  FROM notes
			  WHERE owner_id = $1
			  ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]model.Note, 0)
	for rows.Next() {
		var note model.Note
		err := rows.Scan(
			&note.ID, &note.OwnerID, &note.Title, &note.Content, &note.CreatedAt, &note.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notes: %w", err)
	}

	return notes, nil
}

func (r *NoteRepository) Update(ctx context.Context, ownerID, id uuid.UUID, title, content string) (model.Note, error) {
	query := `UPDATE notes
			  SET title = $3, content = $4, updated_at = NOW()
			  WHERE id = $1 AND owner_id = $2
			  RETURNING id, owner_id, title, content, created_at, updated_at`

	var note model.Note
	err := r.db.QueryRow(ctx, query, id, ownerID, title, content).Scan(
		&note.ID, &note.OwnerID, &note.Title, &note.Content, &note.CreatedAt, &note.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Note{}, model.ErrNotFound
		}
		return model.Note{}, fmt.Errorf("failed to update note: %w", err)
	}

	return note, nil
}

func (r *NoteRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	const query = `DELETE FROM notes WHERE id = $1 AND owner_id = $2`
	cmd, err := r.db.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
