package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/family_treasury/internal/platform/config"
	"github.com/SscSPs/family_treasury/pkg/logging"
	"github.com/spf13/cobra"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(*cobra.Command, []string) error {
			cfg, logger, err := loadForMigrations()
			if err != nil {
				return err
			}
			return migrateUp(cfg, logger)
		},
	}

	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			steps, err := cmd.Flags().GetInt("steps")
			if err != nil {
				return fmt.Errorf("failed to get steps flag: %w", err)
			}
			if steps < 1 {
				return fmt.Errorf("steps must be at least 1, got %d", steps)
			}
			cfg, logger, err := loadForMigrations()
			if err != nil {
				return err
			}
			return withMigrator(cfg, logger, func(m *migrate.Migrate) error {
				return m.Steps(-steps)
			})
		},
	}
	down.Flags().Int("steps", 1, "Number of migrations to roll back")

	cmd.AddCommand(up, down)
	return cmd
}

func loadForMigrations() (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.DatabaseURL == "" {
		return nil, nil, errors.New("PGSQL_URL is required to run migrations")
	}
	return cfg, logging.Setup(os.Stdout, cfg.LogLevel, cfg.IsProduction), nil
}

func migrateUp(cfg *config.Config, logger *slog.Logger) error {
	return withMigrator(cfg, logger, func(m *migrate.Migrate) error {
		return m.Up()
	})
}

// withMigrator opens a temporary database/sql connection through the pgx stdlib driver,
// runs apply and reports the resulting schema version.
func withMigrator(cfg *config.Config, logger *slog.Logger, apply func(*migrate.Migrate) error) error {
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database connection for migrations: %w", err)
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database for migrations: %w", err)
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create postgres driver instance for migrations: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(cfg.MigrationsPath, "postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	applyErr := apply(m)
	if applyErr != nil && !errors.Is(applyErr, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", applyErr)
	}

	version, dirty, verr := m.Version()
	if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
		logger.Warn("Could not read migration version", slog.String("error", verr.Error()))
	}

	if errors.Is(applyErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.", slog.Uint64("version", uint64(version)))
	} else {
		logger.Info("Database migrations applied successfully.", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
	}
	return nil
}
