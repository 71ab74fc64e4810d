package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dtroode/gophnotes-server/internal/api/http/handler"
	"github.com/dtroode/gophnotes-server/internal/apierrors"
	"github.com/dtroode/gophnotes-server/internal/logger"
	"github.com/dtroode/gophnotes-server/internal/model"
)

// Token rejection reasons.
const (
	ReasonMissing   = "missing"
	ReasonMalformed = "malformed"
	ReasonExpired   = "expired"
)

const bearerPrefix = "Bearer "

// TokenVerifier resolves the identity carried by a bearer token.
type TokenVerifier interface {
	Verify(token string) (model.Claims, error)
}

// RejectionRecorder counts requests refused by Authenticate.
type RejectionRecorder interface {
	ObserveTokenRejection(reason string)
}

// Authenticate validates bearer tokens and injects the identity into the
// request context.
type Authenticate struct {
	tokenVerifier  TokenVerifier
	contextManager model.ContextManager
	recorder       RejectionRecorder
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(
	tokenVerifier TokenVerifier,
	contextManager model.ContextManager,
	recorder RejectionRecorder,
	logger *logger.Logger,
) *Authenticate {
	return &Authenticate{
		tokenVerifier:  tokenVerifier,
		contextManager: contextManager,
		recorder:       recorder,
		logger:         logger,
	}
}

// Handle rejects the request with 401 unless it carries a valid token.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			m.reject(w, r, ReasonMissing, apierrors.NewErrMissingAuthorizationToken())
			return
		}

		claims, err := m.tokenVerifier.Verify(tokenString)
		if err != nil {
			reason := ReasonMalformed
			if errors.Is(err, model.ErrTokenExpired) {
				reason = ReasonExpired
			}
			m.reject(w, r, reason, apierrors.NewErrInvalidAuthorizationToken())
			return
		}

		ctx := m.contextManager.SetIdentityToContext(r.Context(), claims.Identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Authenticate) reject(w http.ResponseWriter, r *http.Request, reason string, apiErr *apierrors.APIError) {
	m.logger.Debug("Authenticate middleware: request rejected",
		"path", r.URL.Path,
		"reason", reason)
	if m.recorder != nil {
		m.recorder.ObserveTokenRejection(reason)
	}
	handler.WriteError(w, apiErr, "")
}

func bearerToken(header string) (string, bool) {
	token, found := strings.CutPrefix(header, bearerPrefix)
	if !found {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}
