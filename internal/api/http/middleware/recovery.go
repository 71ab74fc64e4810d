package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/dtroode/gophnotes-server/internal/api/http/handler"
	"github.com/dtroode/gophnotes-server/internal/logger"
)

// Recovery turns handler panics into an opaque 500 response.
type Recovery struct {
	logger *logger.Logger
}

// NewRecovery creates a new Recovery middleware.
func NewRecovery(logger *logger.Logger) *Recovery {
	return &Recovery{logger: logger}
}

func (m *Recovery) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				m.logger.Error("Recovery middleware: handler panicked",
					"path", r.URL.Path,
					"panic", fmt.Sprint(rec),
					"stack", string(debug.Stack()))
				handler.WriteError(w, fmt.Errorf("panic: %v", rec), "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
