package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/dtroode/gophnotes-server/internal/logger"
)

const requestIDHeader = "X-Request-ID"

// RequestRecorder receives one observation per served request.
type RequestRecorder interface {
	ObserveHTTP(route, method string, code int, elapsed time.Duration)
}

// Logging writes an access log line and request metrics for each request.
type Logging struct {
	recorder RequestRecorder
	logger   *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(recorder RequestRecorder, logger *logger.Logger) *Logging {
	return &Logging{recorder: recorder, logger: logger}
}

// Handle logs method, path, status and duration of the request.
func (l *Logging) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		elapsed := time.Since(start)
		l.logger.With("request_id", requestID).Info("HTTP request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.status,
			"duration_ms", elapsed.Milliseconds())

		if l.recorder != nil {
			l.recorder.ObserveHTTP(routeTemplate(r), r.Method, rw.status, elapsed)
		}
	})
}

// routeTemplate returns the pattern of the matched route.
func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (s *statusRecorder) WriteHeader(code int) {
	if !s.wroteHeader {
		s.status = code
		s.wroteHeader = true
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	s.wroteHeader = true
	return s.ResponseWriter.Write(b)
}
