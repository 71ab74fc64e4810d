package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/gophnotes-server/internal/apierrors"
	"github.com/dtroode/gophnotes-server/internal/logger"
	"github.com/dtroode/gophnotes-server/internal/model"
)

// Note manages notes on behalf of their owner.
type Note struct {
	noteStore model.NoteStore
	userStore model.UserStore
	logger    *logger.Logger
}

func NewNote(noteStore model.NoteStore, userStore model.UserStore, logger *logger.Logger) *Note {
	return &Note{
		noteStore: noteStore,
		userStore: userStore,
		logger:    logger,
	}
}

// List returns the owner's notes, newest first.
func (s *Note) List(ctx context.Context, ownerID uuid.UUID) ([]model.Note, error) {
	notes, err := s.noteStore.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	s.logger.Debug("Note service: listed notes",
		"owner_id", ownerID,
		"count", len(notes))

	return notes, nil
}

// Create stores a new note owned by ownerID. A token whose account has been
// removed is rejected as invalid.
func (s *Note) Create(ctx context.Context, ownerID uuid.UUID, input model.NoteInput) (model.Note, error) {
	if input.Title == "" {
		return model.Note{}, apierrors.NewErrTitleRequired()
	}

	if _, err := s.userStore.GetByID(ctx, ownerID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			s.logger.Debug("Note service: owner no longer exists",
				"owner_id", ownerID)
			return model.Note{}, apierrors.NewErrInvalidAuthorizationToken()
		}
		return model.Note{}, fmt.Errorf("failed to get note owner: %w", err)
	}

	note, err := s.noteStore.Create(ctx, model.Note{
		OwnerID: ownerID,
		Title:   input.Title,
		Content: input.Content,
	})
	if err != nil {
		return model.Note{}, fmt.Errorf("failed to create note: %w", err)
	}

	s.logger.Info("Note service: note created",
		"owner_id", ownerID,
		"note_id", note.ID)

	return note, nil
}

// Update replaces the title and content of a note owned by ownerID.
func (s *Note) Update(ctx context.Context, ownerID, id uuid.UUID, input model.NoteInput) (model.Note, error) {
	if input.Title == "" {
		return model.Note{}, apierrors.NewErrTitleRequired()
	}

	note, err := s.noteStore.Update(ctx, ownerID, id, input.Title, input.Content)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Note{}, apierrors.NewErrNoteNotFound()
		}
		return model.Note{}, fmt.Errorf("failed to update note: %w", err)
	}

	s.logger.Info("Note service: note updated",
		"owner_id", ownerID,
		"note_id", id)

	return note, nil
}

// Delete removes a note owned by ownerID.
func (s *Note) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	err := s.noteStore.Delete(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return apierrors.NewErrNoteNotFound()
		}
		return fmt.Errorf("failed to delete note: %w", err)
	}

	s.logger.Info("Note service: note deleted",
		"owner_id", ownerID,
		"note_id", id)

	return nil
}
