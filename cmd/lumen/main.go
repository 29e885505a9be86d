package main

import (
	"os"

	"github.com/spf13/cobra"

	"lumen/internal/interfaces/cli/migrate"
	"lumen/internal/interfaces/cli/seed"
	"lumen/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "lumen",
		Short: "Lumen - subscription billing service",
		Long:  `Lumen manages payment checkout, redirect-driven verification and subscription activation against a hosted payment gateway.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		seed.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
