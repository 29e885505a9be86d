package seed

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lumen/internal/infrastructure/config"
	"lumen/internal/infrastructure/database"
	"lumen/internal/infrastructure/persistence/seeds"
	"lumen/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed reference data",
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(newPlansCommand())

	return cmd
}

func newPlansCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "plans",
		Short: "Seed the default plan catalog",
		RunE:  runPlans,
	}
}

func runPlans(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	if err := seeds.SeedPlans(context.Background(), database.Get()); err != nil {
		return fmt.Errorf("failed to seed plans: %w", err)
	}

	logger.Info("plan catalog seeded")
	return nil
}
