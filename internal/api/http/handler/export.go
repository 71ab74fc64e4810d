package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/dtroode/gophnotes-server/internal/logger"
	"github.com/dtroode/gophnotes-server/internal/model"
)

// ExportService defines note snapshot operations.
type ExportService interface {
	Create(ctx context.Context, ownerID uuid.UUID) (string, error)
	Open(ctx context.Context, ownerID uuid.UUID, name string) (io.ReadCloser, error)
	Delete(ctx context.Context, ownerID uuid.UUID, name string) error
}

// Export handles the note snapshot endpoints.
type Export struct {
	exportService  ExportService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewExport creates a new Export handler.
func NewExport(exportService ExportService, contextManager model.ContextManager, logger *logger.Logger) *Export {
	return &Export{
		exportService:  exportService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Create handles POST /api/notes/export.
func (h *Export) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r, h.contextManager)
	if !ok {
		return
	}

	name, err := h.exportService.Create(r.Context(), identity.UserID)
	if err != nil {
		handleError(w, h.logger, "Export handler: create", err, "Server error exporting notes")
		return
	}

	writeJSON(w, http.StatusCreated, ExportResponse{
		MessageResponse: MessageResponse{Success: true, Message: "Notes exported successfully"},
		Key:             name,
	})
}

// Get handles GET /api/notes/export/{name}.
func (h *Export) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r, h.contextManager)
	if !ok {
		return
	}

	rc, err := h.exportService.Open(r.Context(), identity.UserID, mux.Vars(r)["name"])
	if err != nil {
		handleError(w, h.logger, "Export handler: get", err, "Server error fetching export")
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		h.logger.Error("Export handler: streaming snapshot failed",
			"user_id", identity.UserID,
			"error", err.Error())
	}
}

// Delete handles DELETE /api/notes/export/{name}.
func (h *Export) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r, h.contextManager)
	if !ok {
		return
	}

	if err := h.exportService.Delete(r.Context(), identity.UserID, mux.Vars(r)["name"]); err != nil {
		handleError(w, h.logger, "Export handler: delete", err, "Server error deleting export")
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Success: true, Message: "Export deleted successfully"})
}
