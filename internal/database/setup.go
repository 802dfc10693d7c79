package database

import (
	"database/sql"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// Setup creates the database file and applies the DDL script on first
// run. An existing database file is trusted as-is and left untouched;
// a missing schema script is a fatal startup error for the caller.
func Setup(dbPath, schemaPath string, logger *zap.SugaredLogger) error {
	if _, err := os.Stat(dbPath); err == nil {
		logger.Infow("database already exists, skipping schema creation", "path", dbPath)
		return nil
	}

	script, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("schema file %s: %w", schemaPath, err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("create database %s: %w", dbPath, err)
	}
	defer db.Close()

	if _, err := db.Exec(string(script)); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	logger.Infow("schema created", "path", dbPath, "schema", schemaPath)
	return nil
}
