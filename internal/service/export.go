package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/gophnotes-server/internal/apierrors"
	"github.com/dtroode/gophnotes-server/internal/logger"
	"github.com/dtroode/gophnotes-server/internal/model"
)

var exportNamePattern = regexp.MustCompile(`^notes-[0-9]+\.json$`)

// Export writes snapshots of an owner's notes to object storage. Snapshot
// keys are prefixed with the owner id so one owner can never address
// another owner's snapshots.
type Export struct {
	noteStore model.NoteStore
	storage   model.Storage
	logger    *logger.Logger
	now       func() time.Time
}

func NewExport(noteStore model.NoteStore, storage model.Storage, logger *logger.Logger) *Export {
	return &Export{
		noteStore: noteStore,
		storage:   storage,
		logger:    logger,
		now:       time.Now,
	}
}

// Create uploads a snapshot of the owner's notes and returns its name.
func (s *Export) Create(ctx context.Context, ownerID uuid.UUID) (string, error) {
	notes, err := s.noteStore.ListByOwner(ctx, ownerID)
	if err != nil {
		return "", fmt.Errorf("failed to list notes: %w", err)
	}

	exportedAt := s.now().UTC()
	body, err := json.Marshal(model.NoteSnapshot{
		OwnerID:    ownerID,
		ExportedAt: exportedAt,
		Notes:      notes,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	name := fmt.Sprintf("notes-%d.json", exportedAt.UnixNano())
	if err := s.storage.Upload(ctx, objectKey(ownerID, name), bytes.NewReader(body)); err != nil {
		return "", fmt.Errorf("failed to upload snapshot: %w", err)
	}

	s.logger.Info("Export service: snapshot created",
		"owner_id", ownerID,
		"name", name,
		"notes", len(notes))

	return name, nil
}

// Open returns the content of a snapshot owned by ownerID. The caller must
// close the returned reader.
func (s *Export) Open(ctx context.Context, ownerID uuid.UUID, name string) (io.ReadCloser, error) {
	key, err := s.resolve(ctx, ownerID, name)
	if err != nil {
		return nil, err
	}

	rc, err := s.storage.Download(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to download snapshot: %w", err)
	}

	return rc, nil
}

// Delete removes a snapshot owned by ownerID.
func (s *Export) Delete(ctx context.Context, ownerID uuid.UUID, name string) error {
	key, err := s.resolve(ctx, ownerID, name)
	if err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}

	s.logger.Info("Export service: snapshot deleted",
		"owner_id", ownerID,
		"name", name)

	return nil
}

func (s *Export) resolve(ctx context.Context, ownerID uuid.UUID, name string) (string, error) {
	if !exportNamePattern.MatchString(name) {
		return "", apierrors.NewErrExportNotFound()
	}

	key := objectKey(ownerID, name)
	exists, err := s.storage.Exists(ctx, key)
	if err != nil {
		return "", fmt.Errorf("failed to check snapshot: %w", err)
	}
	if !exists {
		return "", apierrors.NewErrExportNotFound()
	}

	return key, nil
}

func objectKey(ownerID uuid.UUID, name string) string {
	return ownerID.String() + "/" + name
}
