package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dtroode/gophnotes-server/internal/api/http/handler"
	"github.com/dtroode/gophnotes-server/internal/api/http/middleware"
	"github.com/dtroode/gophnotes-server/internal/apierrors"
	"github.com/dtroode/gophnotes-server/internal/logger"
	"github.com/dtroode/gophnotes-server/internal/metrics"
	"github.com/dtroode/gophnotes-server/internal/model"
)

// Router wires handlers and middleware into the HTTP API.
type Router struct {
	authService    handler.AuthService
	noteService    handler.NoteService
	exportService  handler.ExportService
	tokenVerifier  middleware.TokenVerifier
	contextManager model.ContextManager
	metrics        *metrics.Metrics
	allowedOrigins []string
	maxBodyBytes   int64
	logger         *logger.Logger
}

// New creates a new Router. A nil exportService leaves the export routes
// unregistered. Request bodies larger than maxBodyBytes are rejected with 413.
func New(
	authService handler.AuthService,
	noteService handler.NoteService,
	exportService handler.ExportService,
	tokenVerifier middleware.TokenVerifier,
	contextManager model.ContextManager,
	metrics *metrics.Metrics,
	allowedOrigins []string,
	maxBodyBytes int64,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		noteService:    noteService,
		exportService:  exportService,
		tokenVerifier:  tokenVerifier,
		contextManager: contextManager,
		metrics:        metrics,
		allowedOrigins: allowedOrigins,
		maxBodyBytes:   maxBodyBytes,
		logger:         logger,
	}
}

// Register builds the HTTP handler serving every route.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.metrics, r.logger)
	recovery := middleware.NewRecovery(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenVerifier, r.contextManager, r.metrics, r.logger)

	root := mux.NewRouter()
	// mux skips Use middleware when no route matches.
	root.NotFoundHandler = logging.Handle(recovery.Handle(http.HandlerFunc(notFound)))
	root.MethodNotAllowedHandler = logging.Handle(recovery.Handle(http.HandlerFunc(methodNotAllowed)))
	root.Use(logging.Handle, recovery.Handle)

	root.Handle("/metrics", r.metrics.Handler()).Methods(http.MethodGet)

	api := root.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", handler.Health).Methods(http.MethodGet)
	r.registerAuthRoutes(api)

	protected := api.NewRoute().Subrouter()
	protected.Use(authenticate.Handle)
	if r.exportService != nil {
		r.registerExportRoutes(protected)
	}
	r.registerNoteRoutes(protected)

	return middleware.CORS(r.allowedOrigins)(middleware.MaxBytes(r.maxBodyBytes)(root))
}

func (r *Router) registerAuthRoutes(api *mux.Router) {
	authHandler := handler.NewAuth(r.authService, r.logger)
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
}

func (r *Router) registerNoteRoutes(api *mux.Router) {
	noteHandler := handler.NewNote(r.noteService, r.contextManager, r.logger)
	api.HandleFunc("/notes", noteHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/notes", noteHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/notes/{id}", noteHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/notes/{id}", noteHandler.Delete).Methods(http.MethodDelete)
}

func (r *Router) registerExportRoutes(api *mux.Router) {
	exportHandler := handler.NewExport(r.exportService, r.contextManager, r.logger)
	api.HandleFunc("/notes/export", exportHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/notes/export/{name}", exportHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/notes/export/{name}", exportHandler.Delete).Methods(http.MethodDelete)
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	handler.WriteError(w, apierrors.NewErrRouteNotFound(), "")
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	handler.WriteError(w, apierrors.NewErrMethodNotAllowed(), "")
}
