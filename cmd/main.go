package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	apicontext "github.com/dtroode/gophnotes-server/internal/api/http/context"
	"github.com/dtroode/gophnotes-server/internal/api/http/handler"
	"github.com/dtroode/gophnotes-server/internal/api/http/router"
	httpServer "github.com/dtroode/gophnotes-server/internal/api/http/server"
	"github.com/dtroode/gophnotes-server/internal/config"
	"github.com/dtroode/gophnotes-server/internal/hasher"
	"github.com/dtroode/gophnotes-server/internal/logger"
	"github.com/dtroode/gophnotes-server/internal/metrics"
	"github.com/dtroode/gophnotes-server/internal/model"
	"github.com/dtroode/gophnotes-server/internal/repository/postgres"
	"github.com/dtroode/gophnotes-server/internal/server"
	"github.com/dtroode/gophnotes-server/internal/service"
	storage "github.com/dtroode/gophnotes-server/internal/storage/minio"
	"github.com/dtroode/gophnotes-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	tokenManager, err := token.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL)
	if err != nil {
		logger.Fatal("failed to initialize token manager", "error", err)
	}
	logger.Info("token manager initialized", "ttl", tokenManager.TTL())
	passwordHasher, err := hasher.NewBcrypt(cfg.Bcrypt.Cost)
	if err != nil {
		logger.Fatal("failed to initialize password hasher", "error", err)
	}

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(registry)

	userRepo := postgres.NewUserRepository(db)
	noteRepo := postgres.NewNoteRepository(db)

	authService := service.NewAuth(userRepo, passwordHasher, tokenManager, appMetrics, logger)
	noteService := service.NewNote(noteRepo, userRepo, logger)

	var exportService handler.ExportService
	if cfg.Storage.Enabled {
		storageClient, err := storage.Connect(ctx, cfg.Storage)
		if err != nil {
			logger.Fatal("failed to initialize storage client", "error", err)
		}
		exportService = service.NewExport(noteRepo, storageClient, logger)
		logger.Info("note export enabled", "endpoint", cfg.Storage.Endpoint, "bucket", cfg.Storage.Bucket)
	}

	r := router.New(
		authService,
		noteService,
		exportService,
		tokenManager,
		apicontext.NewManager(),
		appMetrics,
		cfg.HTTP.CORSAllowedOrigins,
		cfg.HTTP.MaxBodyBytes,
		logger,
	)
	srv := httpServer.NewHTTPServer(r.Register(), cfg.HTTP.Address)
	sl := server.NewSecurityLayer(cfg.HTTP)

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address(), "https", cfg.HTTP.EnableHTTPS)
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
