package handler

import (
	"context"
	"net/http"

	"github.com/dtroode/gophnotes-server/internal/logger"
	"github.com/dtroode/gophnotes-server/internal/model"
)

// AuthService defines user registration and login operations.
type AuthService interface {
	Register(ctx context.Context, creds model.Credentials) (model.AuthResult, error)
	Login(ctx context.Context, creds model.Credentials) (model.AuthResult, error)
}

// Auth handles the public authentication endpoints.
type Auth struct {
	authService AuthService
	logger      *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, logger *logger.Logger) *Auth {
	return &Auth{
		authService: authService,
		logger:      logger,
	}
}

// Register handles POST /api/auth/register.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials
	if err := decodeJSON(r, &creds); err != nil {
		WriteError(w, err, "")
		return
	}

	h.logger.Debug("Auth handler: processing registration request",
		"email", creds.Email)

	result, err := h.authService.Register(r.Context(), creds)
	if err != nil {
		handleError(w, h.logger, "Auth handler: registration", err,
			"Server error during registration. Please try again later.")
		return
	}

	h.logger.Info("Auth handler: registration completed",
		"user_id", result.User.ID)

	writeJSON(w, http.StatusCreated, AuthResponse{
		MessageResponse: MessageResponse{Success: true, Message: "User registered successfully"},
		Token:           result.Token,
		User:            result.User,
	})
}

// Login handles POST /api/auth/login.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials
	if err := decodeJSON(r, &creds); err != nil {
		WriteError(w, err, "")
		return
	}

	h.logger.Debug("Auth handler: processing login request",
		"email", creds.Email)

	result, err := h.authService.Login(r.Context(), creds)
	if err != nil {
		handleError(w, h.logger, "Auth handler: login", err,
			"Server error during login. Please try again later.")
		return
	}

	h.logger.Info("Auth handler: login completed",
		"user_id", result.User.ID)

	writeJSON(w, http.StatusOK, AuthResponse{
		MessageResponse: MessageResponse{Success: true, Message: "Login successful"},
		Token:           result.Token,
		User:            result.User,
	})
}
