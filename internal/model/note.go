package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// NoteStore defines persistence operations for notes. Every operation is
// scoped by owner; a note that exists under another owner is reported as
// ErrNotFound.
type NoteStore interface {
	Create(ctx context.Context, note Note) (Note, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Note, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, title, content string) (Note, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// Note is a private text note.
type Note struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NoteInput carries the client-editable note fields.
type NoteInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// NoteSnapshot is a point-in-time export of an owner's notes.
type NoteSnapshot struct {
	OwnerID    uuid.UUID `json:"owner"`
	ExportedAt time.Time `json:"exported_at"`
	Notes      []Note    `json:"notes"`
}
