package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"api-security-news/pkg/domain"
)

// Mirror receives a copy of every published curation result
type Mirror interface {
	Publish(ctx context.Context, result *domain.CurationResult) error
}

// MirrorOptions selects which mirrors to open; empty fields disable the mirror
type MirrorOptions struct {
	MongoURI        string
	MongoDB         string
	MongoCollection string

	PostgresDSN string
	SQLitePath  string

	SupabaseURL      string
	SupabaseKey      string
	SupabasePassword string

	ConnectTimeout time.Duration
}

// ConnectMirrors opens every configured mirror. The returned close func is always
// safe to call, also after an error.
func ConnectMirrors(ctx context.Context, opts MirrorOptions) ([]Mirror, func(), error) {
	var mirrors []Mirror
	var closers []func()
	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}

	timeout := opts.ConnectTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if opts.MongoURI != "" {
		client := NewClient(opts.MongoURI, opts.MongoDB, opts.MongoCollection)
		if err := client.Connect(connectCtx); err != nil {
			return nil, closeAll, fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		closers = append(closers, func() { _ = client.Close(context.Background()) })
		mirrors = append(mirrors, client)
	}

	if opts.PostgresDSN != "" {
		client := NewPostgresClient(PostgresConfig{DSN: opts.PostgresDSN, MaxOpenConns: 2})
		if err := client.Connect(connectCtx); err != nil {
			return nil, closeAll, fmt.Errorf("failed to connect to Postgres: %w", err)
		}
		closers = append(closers, func() { _ = client.Close() })
		mirrors = append(mirrors, client)
	}

	if opts.SQLitePath != "" {
		client := NewSQLiteClient(opts.SQLitePath)
		if err := client.Connect(connectCtx); err != nil {
			return nil, closeAll, fmt.Errorf("failed to open SQLite: %w", err)
		}
		closers = append(closers, func() { _ = client.Close() })
		mirrors = append(mirrors, client)
	}

	if opts.SupabaseURL != "" {
		client := NewSupabaseClient(SupabaseConfig{
			ProjectURL:   opts.SupabaseURL,
			APIKey:       opts.SupabaseKey,
			Password:     opts.SupabasePassword,
			MaxOpenConns: 2,
		})
		if err := client.Connect(connectCtx); err != nil {
			return nil, closeAll, fmt.Errorf("failed to connect to Supabase: %w", err)
		}
		closers = append(closers, func() { _ = client.Close() })
		mirrors = append(mirrors, client)
	}

	if len(mirrors) > 0 {
		log.Printf("Connected %d database mirrors", len(mirrors))
	}
	return mirrors, closeAll, nil
}
