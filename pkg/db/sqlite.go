package db

import (
	"context"
	"database/sql"
	"fmt"

	"api-security-news/pkg/domain"

	_ "modernc.org/sqlite"
)

// SQLiteClient mirrors the curation result into a local SQLite file
type SQLiteClient struct {
	path string
	db   *sql.DB
}

// NewSQLiteClient constructs a SQLite client; call Connect before use.
func NewSQLiteClient(path string) *SQLiteClient {
	return &SQLiteClient{path: path}
}

// Connect opens the database file, creating it if needed
func (c *SQLiteClient) Connect(ctx context.Context) error {
	if c.path == "" {
		return fmt.Errorf("sqlite path is required")
	}

	db, err := sql.Open("sqlite", c.path)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return fmt.Errorf("set WAL mode: %w", err)
	}

	c.db = db
	return nil
}

// Close closes the database handle
func (c *SQLiteClient) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

func (c *SQLiteClient) DB() *sql.DB {
	return c.db
}

// Publish implements Mirror
func (c *SQLiteClient) Publish(ctx context.Context, result *domain.CurationResult) error {
	return NewTablePublisher(c).Publish(ctx, result)
}
