package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/family_treasury/internal/adapters/settlement"
	portsrepo "github.com/SscSPs/family_treasury/internal/core/ports/repositories"
	"github.com/SscSPs/family_treasury/internal/core/services"
	"github.com/SscSPs/family_treasury/internal/handlers"
	"github.com/SscSPs/family_treasury/internal/middleware"
	"github.com/SscSPs/family_treasury/internal/platform/config"
	"github.com/SscSPs/family_treasury/internal/platform/metrics"
	"github.com/SscSPs/family_treasury/internal/repositories/database/memory"
	"github.com/SscSPs/family_treasury/internal/repositories/database/pgsql"
	"github.com/SscSPs/family_treasury/internal/utils"
	"github.com/SscSPs/family_treasury/pkg/database"
	"github.com/SscSPs/family_treasury/pkg/logging"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 15 * time.Second

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the treasury HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			autoMigrate, err := cmd.Flags().GetBool("migrate")
			if err != nil {
				return fmt.Errorf("failed to get migrate flag: %w", err)
			}
			return runServer(cmd.Context(), autoMigrate)
		},
	}
	cmd.Flags().Bool("migrate", true, "Apply pending migrations before serving (postgres storage only)")
	return cmd
}

func runServer(ctx context.Context, autoMigrate bool) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger := logging.Setup(os.Stdout, cfg.LogLevel, cfg.IsProduction)

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeStore, err := openStore(ctx, cfg, autoMigrate, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	recorder := settlement.NewRetryingRecorder(
		settlement.NewChainRecorder(),
		settlement.WithMaxAttempts(cfg.SettlementMaxAttempts),
	)

	m := metrics.NewMetrics()
	analytics := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer analytics.Close()

	container := services.NewServiceContainer(cfg, repos, recorder, m, analytics)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	if err := handlers.RegisterRoutes(r, cfg, container, m, analytics); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.StorageDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed to run: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}

// openStore builds the repositories for the configured storage driver.
func openStore(ctx context.Context, cfg *config.Config, autoMigrate bool, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.StorageDriver == config.StorageDriverMemory {
		logger.Warn("Using in-memory storage, data is lost on restart")
		return memory.NewRepositoryProvider(), func() {}, nil
	}

	if autoMigrate {
		logger.Info("Running database migrations...")
		if err := migrateUp(cfg, logger); err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("failed to initialize database pool: %w", err)
	}
	logger.Info("Database connection pool established.")

	return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool) }, nil
}
