package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/dtroode/gophnotes-server/internal/apierrors"
	"github.com/dtroode/gophnotes-server/internal/logger"
	"github.com/dtroode/gophnotes-server/internal/model"
)

// NoteService defines owner-scoped note operations.
type NoteService interface {
	List(ctx context.Context, ownerID uuid.UUID) ([]model.Note, error)
	Create(ctx context.Context, ownerID uuid.UUID, input model.NoteInput) (model.Note, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, input model.NoteInput) (model.Note, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// Note handles the protected note endpoints.
type Note struct {
	noteService    NoteService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewNote creates a new Note handler.
func NewNote(noteService NoteService, contextManager model.ContextManager, logger *logger.Logger) *Note {
	return &Note{
		noteService:    noteService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// List handles GET /api/notes.
func (h *Note) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r, h.contextManager)
	if !ok {
		return
	}

	notes, err := h.noteService.List(r.Context(), identity.UserID)
	if err != nil {
		handleError(w, h.logger, "Note handler: list", err, "Server error fetching notes")
		return
	}

	writeJSON(w, http.StatusOK, notes)
}

// Create handles POST /api/notes.
func (h *Note) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r, h.contextManager)
	if !ok {
		return
	}

	var input model.NoteInput
	if err := decodeJSON(r, &input); err != nil {
		WriteError(w, err, "")
		return
	}

	note, err := h.noteService.Create(r.Context(), identity.UserID, input)
	if err != nil {
		handleError(w, h.logger, "Note handler: create", err, "Server error creating note")
		return
	}

	writeJSON(w, http.StatusCreated, NoteResponse{
		MessageResponse: MessageResponse{Success: true, Message: "Note created successfully"},
		Data:            note,
	})
}

// Update handles PUT /api/notes/{id}.
func (h *Note) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r, h.contextManager)
	if !ok {
		return
	}

	id, ok := noteID(w, r)
	if !ok {
		return
	}

	var input model.NoteInput
	if err := decodeJSON(r, &input); err != nil {
		WriteError(w, err, "")
		return
	}

	note, err := h.noteService.Update(r.Context(), identity.UserID, id, input)
	if err != nil {
		handleError(w, h.logger, "Note handler: update", err, "Server error updating note")
		return
	}

	writeJSON(w, http.StatusOK, NoteResponse{
		MessageResponse: MessageResponse{Success: true, Message: "Note updated successfully!"},
		Data:            note,
	})
}

// Delete handles DELETE /api/notes/{id}.
func (h *Note) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r, h.contextManager)
	if !ok {
		return
	}

	id, ok := noteID(w, r)
	if !ok {
		return
	}

	if err := h.noteService.Delete(r.Context(), identity.UserID, id); err != nil {
		handleError(w, h.logger, "Note handler: delete", err, "Server error deleting note")
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Success: true, Message: "Note deleted successfully"})
}

func requireIdentity(w http.ResponseWriter, r *http.Request, cm model.ContextManager) (model.Identity, bool) {
	identity, ok := cm.GetIdentityFromContext(r.Context())
	if !ok {
		WriteError(w, apierrors.NewErrMissingAuthorizationToken(), "")
		return model.Identity{}, false
	}
	return identity, true
}

// noteID parses the {id} route variable. Ids that are not UUIDs cannot match
// any note and are reported as not found.
func noteID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		WriteError(w, apierrors.NewErrNoteNotFound(), "")
		return uuid.Nil, false
	}
	return id, true
}
