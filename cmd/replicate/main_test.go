package main

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"api-security-news/pkg/db"
	"api-security-news/pkg/domain"
	"api-security-news/pkg/store"

	_ "modernc.org/sqlite"
)

func TestRun_ReplicatesToSQLite(t *testing.T) {
	dir := t.TempDir()
	artifact := filepath.Join(dir, "news.json")
	dbPath := filepath.Join(dir, "mirror.db")

	pub := time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)
	result := domain.NewCurationResult(time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC), []domain.NewsItem{
		{Title: "API gateway flaw", Link: "https://example.com/1", PublishedAt: &pub, Source: "A"},
		{Title: "JWT bug", Link: "https://example.com/2", PublishedAt: &pub, Source: "B"},
	})
	if err := store.NewFileStore(artifact).Publish(context.Background(), result); err != nil {
		t.Fatalf("Failed to write artifact: %v", err)
	}

	if err := run(context.Background(), artifact, 0, db.MirrorOptions{SQLitePath: dbPath}); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	// run closed its handle, so a fresh one sees the committed rows
	check, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to open mirror: %v", err)
	}
	defer check.Close()

	var count int
	if err := check.QueryRow(`SELECT COUNT(*) FROM news_item`).Scan(&count); err != nil {
		t.Fatalf("Count query failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 rows, got %d", count)
	}
}

func TestRun_MissingArtifact(t *testing.T) {
	dir := t.TempDir()
	err := run(context.Background(), filepath.Join(dir, "missing.json"), 0, db.MirrorOptions{
		SQLitePath: filepath.Join(dir, "mirror.db"),
	})
	if !errors.Is(err, store.ErrNoArtifact) {
		t.Errorf("Expected ErrNoArtifact, got %v", err)
	}
}

func TestRun_NoMirrors(t *testing.T) {
	if err := run(context.Background(), filepath.Join(t.TempDir(), "news.json"), 0, db.MirrorOptions{}); err == nil {
		t.Error("Expected error without mirrors, got nil")
	}
}
