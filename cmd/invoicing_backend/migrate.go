package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"

	"github.com/SscSPs/vendor_invoicing/internal/platform/config"
)

func newMigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			return runMigrations(cfg, logger, migrateUp)
		},
	})

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		Example: `  # Roll back the most recent migration
  invoicing_backend migrate down

  # Roll back everything
  invoicing_backend migrate down --all`,
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			return runMigrations(cfg, logger, func(m *migrate.Migrate) error {
				if all {
					return m.Down()
				}
				return m.Steps(-1)
			})
		},
	}
	downCmd.Flags().Bool("all", false, "Roll back every migration instead of the last one")
	migrateCmd.AddCommand(downCmd)

	return migrateCmd
}

func migrateUp(m *migrate.Migrate) error { return m.Up() }

// runMigrations opens a database/sql connection through the pgx stdlib driver
// and applies step against the configured migrations source.
func runMigrations(cfg *config.Config, logger *slog.Logger, step func(*migrate.Migrate) error) error {
	if cfg.DatabaseURL == "" {
		return errors.New("PGSQL_URL must be set to run migrations")
	}

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

	logger.Info("Running database migrations...", slog.String("source", cfg.MigrationsPath))
	stepErr := step(m)
	if stepErr != nil && !errors.Is(stepErr, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", stepErr)
	}

	if version, dirty, verr := m.Version(); verr == nil {
		logger.Info("Migration state", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		logger.Error("Migration source error", slog.String("error", sourceErr.Error()))
	}
	if dbErr != nil {
		logger.Error("Migration database error", slog.String("error", dbErr.Error()))
	}

	if errors.Is(stepErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
