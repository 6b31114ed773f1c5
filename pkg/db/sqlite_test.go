package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"api-security-news/pkg/domain"
)

func openSQLite(t *testing.T) *SQLiteClient {
	t.Helper()
	c := NewSQLiteClient(filepath.Join(t.TempDir(), "mirror.db"))
	if err := c.Connect(context.Background()); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestSQLiteClient_Publish_ReplacesTable(t *testing.T) {
	c := openSQLite(t)
	ctx := context.Background()
	generated := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	pub := generated.Add(-2 * time.Hour)

	first := domain.NewCurationResult(generated, []domain.NewsItem{
		{Title: "API gateway flaw", Link: "https://example.com/1", PublishedAt: &pub, Summary: "s", Source: "A"},
		{Title: "JWT bug", Link: "https://example.com/2", Source: "B"},
		{Title: "OAuth leak", Link: "https://example.com/3", PublishedAt: &pub, Source: "A"},
	})
	if err := c.Publish(ctx, first); err != nil {
		t.Fatalf("First publish failed: %v", err)
	}

	var count, undated int
	if err := c.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM news_item`).Scan(&count); err != nil {
		t.Fatalf("Count query failed: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected 3 rows, got %d", count)
	}
	if err := c.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM news_item WHERE pub_date IS NULL`).Scan(&undated); err != nil {
		t.Fatalf("Null query failed: %v", err)
	}
	if undated != 1 {
		t.Errorf("Expected 1 row with NULL pub_date, got %d", undated)
	}

	second := domain.NewCurationResult(generated.Add(time.Hour), []domain.NewsItem{
		{Title: "GraphQL introspection", Link: "https://example.com/4", PublishedAt: &pub, Source: "C"},
	})
	if err := c.Publish(ctx, second); err != nil {
		t.Fatalf("Second publish failed: %v", err)
	}

	rows, err := c.DB().QueryContext(ctx, `SELECT position, link FROM news_item ORDER BY position`)
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	defer rows.Close()

	var links []string
	for rows.Next() {
		var position int
		var link string
		if err := rows.Scan(&position, &link); err != nil {
			t.Fatalf("Scan failed: %v", err)
		}
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("Rows error: %v", err)
	}
	if len(links) != 1 || links[0] != "https://example.com/4" {
		t.Errorf("Expected table to hold only the latest run, got %v", links)
	}
}

func TestSQLiteClient_Connect_RequiresPath(t *testing.T) {
	if err := NewSQLiteClient("").Connect(context.Background()); err == nil {
		t.Error("Expected error for empty path, got nil")
	}
}

func TestConnectMirrors_SQLite(t *testing.T) {
	mirrors, closeAll, err := ConnectMirrors(context.Background(), MirrorOptions{
		SQLitePath: filepath.Join(t.TempDir(), "mirror.db"),
	})
	defer closeAll()
	if err != nil {
		t.Fatalf("ConnectMirrors failed: %v", err)
	}
	if len(mirrors) != 1 {
		t.Fatalf("Expected 1 mirror, got %d", len(mirrors))
	}
	if err := mirrors[0].Publish(context.Background(), domain.NewCurationResult(time.Now(), nil)); err != nil {
		t.Errorf("Publish of empty result failed: %v", err)
	}
}
