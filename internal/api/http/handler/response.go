package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dtroode/gophnotes-server/internal/apierrors"
	"github.com/dtroode/gophnotes-server/internal/model"
)

// MessageResponse is the envelope of every success and error body.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	MessageResponse
	Token string           `json:"token"`
	User  model.PublicUser `json:"user"`
}

// NoteResponse is returned by note create and update.
type NoteResponse struct {
	MessageResponse
	Data model.Note `json:"data"`
}

// ExportResponse is returned when a snapshot is created.
type ExportResponse struct {
	MessageResponse
	Key string `json:"key"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// decodeJSON reports a body cut off by http.MaxBytesReader as 413 and any
// other decoding failure as 400.
func decodeJSON(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return nil
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apierrors.NewErrRequestTooLarge()
	}
	return apierrors.NewErrInvalidRequestBody()
}
