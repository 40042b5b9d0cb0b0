// Package server wires the dashboard backend together: storage, services,
// the REST API and the gRPC health endpoint, plus graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/bharat3214/Genei/internal/logging"
	"github.com/bharat3214/Genei/internal/server/auth"
	"github.com/bharat3214/Genei/internal/server/config"
	"github.com/bharat3214/Genei/internal/server/events"
	"github.com/bharat3214/Genei/internal/server/httpapi"
	"github.com/bharat3214/Genei/internal/server/metrics"
	"github.com/bharat3214/Genei/internal/server/repositories/memstore"
	"github.com/bharat3214/Genei/internal/server/repositories/repomanager"
	"github.com/bharat3214/Genei/internal/server/services"

	gs "github.com/bharat3214/Genei/internal/server/grpc"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config  *config.Config
	logger  logging.Logger
	manager repomanager.RepositoryManager
	handler http.Handler
	grpc    *gs.GRPCServer
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	logger, err := logging.New(c.LogBackend, c.LogLevel, os.Stdout)
	if err != nil {
		return nil, err
	}

	manager, err := openStore(ctx, c, logger)
	if err != nil {
		return nil, err
	}

	if c.SeedData {
		if err := services.Seed(ctx, manager, logger); err != nil {
			_ = manager.Close()
			return nil, fmt.Errorf("seed error: %w", err)
		}
	}

	collector := metrics.NewCollector("genei")
	bus := events.NewBus()
	services.NewActivityRecorder(manager, collector, logger).Subscribe(bus)

	authenticator := auth.NewJWTAuthenticator(c.SecretKey, c.AccessTokenValidityDuration)

	var presigner services.Presigner
	if c.S3Bucket != "" {
		presigner = services.NewS3Presigner(c)
	} else {
		logger.Warn(ctx, "no S3 bucket configured, paper documents are disabled")
	}

	router := httpapi.NewRouter(httpapi.Deps{
		Users:          services.NewUserService(manager, authenticator, c, logger),
		Catalog:        services.NewCatalogService(manager, bus, logger),
		Documents:      services.NewDocumentService(manager, presigner, services.DefaultBreakerSettings(), collector, logger),
		Messaging:      services.NewMessagingService(manager, collector, logger),
		Authenticator:  authenticator,
		Store:          manager,
		Metrics:        collector,
		Logger:         logger,
		AllowedOrigins: c.AllowedOrigins,
	})

	return &App{
		config:  c,
		logger:  logger,
		manager: manager,
		handler: router.Setup(),
		grpc:    gs.NewGRPCServer(c.EndpointAddrGRPC, logger),
	}, nil
}

// openStore picks PostgreSQL when a DSN is configured and the in-memory
// store otherwise.
func openStore(ctx context.Context, c *config.Config, logger logging.Logger) (repomanager.RepositoryManager, error) {
	if c.DatabaseDSN == "" {
		logger.Info(ctx, "using in-memory store")
		return repomanager.NewMemoryRepositoryManager(memstore.NewStore()), nil
	}

	m, err := repomanager.OpenPostgres(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := m.RunMigrations(ctx); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}
	logger.Info(ctx, "using PostgreSQL store")
	return m, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	srv := &http.Server{
		Addr:              app.config.EndpointAddrHTTP,
		Handler:           app.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(shutdownCtx, "HTTP shutdown error", "error", err)
		}
	}()

	app.logger.Info(ctx, "HTTP server listening", "address", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.grpc.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until a termination signal arrives or a server fails, then
// shuts both servers down and closes the store.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.manager.Close(); err != nil {
		app.logger.Error(context.Background(), "store close error", "error", err)
	}
	app.logger.Info(context.Background(), "Stopped")
}
