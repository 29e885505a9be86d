package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"lumen/internal/shared/logger"
)

// Generator creates new migration script files.
type Generator struct {
	scriptsPath string
	logger      logger.Interface
}

func NewGenerator(scriptsPath string) *Generator {
	return &Generator{
		scriptsPath: scriptsPath,
		logger:      logger.NewLogger().With("component", "migration.generator"),
	}
}

// CreateMigration creates a new timestamped goose migration file.
func (g *Generator) CreateMigration(name string) error {
	g.logger.Infow("creating new migration", "name", name)

	timestamp := time.Now().Format("20060102150405")
	fileName := fmt.Sprintf("%s_%s.sql", timestamp, name)
	filePath := filepath.Join(g.scriptsPath, fileName)

	if err := os.MkdirAll(g.scriptsPath, 0755); err != nil {
		return fmt.Errorf("failed to create scripts directory: %w", err)
	}

	content := fmt.Sprintf(`-- +goose Up
-- Migration: %s

-- +goose Down
-- Rollback: %s
`, name, name)

	if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to create migration file: %w", err)
	}

	g.logger.Infow("migration file created", "file", filePath)
	return nil
}
