package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"go-portfolio-site/internal/domain"

	_ "modernc.org/sqlite"
)

const createContactTable = `
CREATE TABLE IF NOT EXISTS contact_messages (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	subject TEXT NOT NULL,
	message TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// NewSQLiteConnection opens (creating if needed) a local database for development runs.
// path may be ":memory:".
func NewSQLiteConnection(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		return nil, &domain.ConfigError{Component: "sqlite store", Missing: []string{"SQLITE_PATH"}}
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// A single connection keeps :memory: databases coherent and avoids SQLITE_BUSY on writes.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, createContactTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create contact_messages table: %w", err)
	}
	return db, nil
}
