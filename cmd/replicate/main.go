package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"api-security-news/pkg/config"
	"api-security-news/pkg/db"
	"api-security-news/pkg/replication"
	"api-security-news/pkg/store"
)

func main() {
	var (
		in      = flag.String("in", config.DefaultOutputPath, "Curation artifact to replicate")
		workers = flag.Int("workers", 0, "Mirrors written in parallel (<=0 means all at once)")

		mirrors db.MirrorOptions
	)
	flag.StringVar(&mirrors.MongoURI, "mongo-uri", "", "MongoDB connection string")
	flag.StringVar(&mirrors.MongoDB, "mongo-db", "apinews", "MongoDB database name")
	flag.StringVar(&mirrors.MongoCollection, "mongo-collection", "news_items", "MongoDB collection for curated items")
	flag.StringVar(&mirrors.PostgresDSN, "postgres-dsn", "", "Postgres DSN")
	flag.StringVar(&mirrors.SQLitePath, "sqlite-path", "", "SQLite file")
	flag.StringVar(&mirrors.SupabaseURL, "supabase-url", "", "Supabase project URL")
	flag.StringVar(&mirrors.SupabaseKey, "supabase-key", "", "Supabase API key (REST mode)")
	flag.StringVar(&mirrors.SupabasePassword, "supabase-password", "", "Supabase database password (direct mode)")
	flag.Parse()

	if err := run(context.Background(), *in, *workers, mirrors); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run replicates the artifact at in; mirrors are closed before it returns
func run(ctx context.Context, in string, workers int, opts db.MirrorOptions) error {
	mirrors, closeAll, err := db.ConnectMirrors(ctx, opts)
	defer closeAll()
	if err != nil {
		return fmt.Errorf("failed to connect mirrors: %w", err)
	}

	replicator, err := replication.NewReplicator(replication.Config{
		Source:  store.NewFileStore(in),
		Mirrors: mirrors,
		Workers: workers,
	})
	if err != nil {
		return fmt.Errorf("failed to create replicator: %w", err)
	}

	start := time.Now()
	if _, err := replicator.Replicate(ctx); err != nil {
		return fmt.Errorf("replication failed: %w", err)
	}
	log.Printf("Done. Duration: %s", time.Since(start))
	return nil
}
