package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"api-security-news/pkg/domain"
)

const newsItemDDL = `
CREATE TABLE IF NOT EXISTS news_item (
  position INTEGER PRIMARY KEY,
  title TEXT NOT NULL DEFAULT '',
  link TEXT NOT NULL DEFAULT '',
  pub_date TIMESTAMPTZ,
  description TEXT NOT NULL DEFAULT '',
  source TEXT NOT NULL DEFAULT '',
  generated_at TIMESTAMPTZ NOT NULL
);`

// DBProvider is implemented by every client backed by a database/sql handle
type DBProvider interface {
	DB() *sql.DB
}

// newsRow is one row of the news_item table; the json tags serve the Supabase REST path
type newsRow struct {
	Position    int        `json:"position"`
	Title       string     `json:"title"`
	Link        string     `json:"link"`
	PubDate     *time.Time `json:"pub_date"`
	Description string     `json:"description"`
	Source      string     `json:"source"`
	GeneratedAt time.Time  `json:"generated_at"`
}

func toRows(result *domain.CurationResult) []newsRow {
	rows := make([]newsRow, 0, len(result.Items))
	for i, item := range result.Items {
		rows = append(rows, newsRow{
			Position:    i,
			Title:       item.Title,
			Link:        item.Link,
			PubDate:     item.PublishedAt,
			Description: item.Summary,
			Source:      item.Source,
			GeneratedAt: result.GeneratedAt,
		})
	}
	return rows
}

// TablePublisher mirrors the curation result into the news_item table.
// The table always holds exactly the latest run.
type TablePublisher struct {
	provider DBProvider
}

// NewTablePublisher creates a publisher writing through provider
func NewTablePublisher(provider DBProvider) *TablePublisher {
	return &TablePublisher{provider: provider}
}

// Publish replaces the table contents with result inside one transaction
func (p *TablePublisher) Publish(ctx context.Context, result *domain.CurationResult) error {
	db := p.provider.DB()
	if db == nil {
		return fmt.Errorf("database not connected")
	}

	if _, err := db.ExecContext(ctx, newsItemDDL); err != nil {
		return fmt.Errorf("create news_item table: %w", err)
	}

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM news_item`); err != nil {
		return fmt.Errorf("clear news_item: %w", err)
	}

	if err := insertRows(ctx, tx, toRows(result)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	log.Printf("TablePublisher: replaced news_item with %d rows", result.Count)
	return nil
}

func insertRows(ctx context.Context, tx *sql.Tx, rows []newsRow) error {
	const insertQuery = `
INSERT INTO news_item (position, title, link, pub_date, description, source, generated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	stmt, err := tx.PrepareContext(ctx, insertQuery)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx, r.Position, r.Title, r.Link, r.PubDate, r.Description, r.Source, r.GeneratedAt); err != nil {
			return fmt.Errorf("insert news item link=%q: %w", r.Link, err)
		}
	}
	return nil
}
