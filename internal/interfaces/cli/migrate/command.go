package migrate

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"lumen/internal/infrastructure/config"
	"lumen/internal/infrastructure/database"
	"lumen/internal/infrastructure/migration"
	"lumen/internal/shared/logger"
)

var (
	env   string
	name  string
	steps int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations: apply, roll back, inspect status, and create new migration files.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
		newCreateCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE:  runStatus,
	}
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new migration",
		RunE:  runCreate,
	}

	cmd.Flags().StringVarP(&name, "name", "m", "", "Migration name (required)")
	cmd.MarkFlagRequired("name")

	return cmd
}

func setup() (*migration.GooseStrategy, func(), error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	scriptsPath, err := filepath.Abs("./internal/infrastructure/migration/scripts")
	if err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("failed to resolve scripts path: %w", err)
	}

	cleanup := func() {
		database.Close()
	}

	return migration.NewGooseStrategy(scriptsPath), cleanup, nil
}

func runUp(cmd *cobra.Command, args []string) error {
	strategy, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	return strategy.Migrate(database.Get())
}

func runDown(cmd *cobra.Command, args []string) error {
	strategy, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	return strategy.MigrateDown(database.Get(), steps)
}

func runStatus(cmd *cobra.Command, args []string) error {
	strategy, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	return strategy.Status(database.Get())
}

func runCreate(cmd *cobra.Command, args []string) error {
	scriptsPath, err := filepath.Abs("./internal/infrastructure/migration/scripts")
	if err != nil {
		return fmt.Errorf("failed to resolve scripts path: %w", err)
	}

	generator := migration.NewGenerator(scriptsPath)
	return generator.CreateMigration(name)
}
