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
	"api-security-news/pkg/fetcher"
	"api-security-news/pkg/httpclient"
	"api-security-news/pkg/parser"
	"api-security-news/pkg/pipeline"
	"api-security-news/pkg/store"
)

type options struct {
	configPath string
	outPath    string
	parser     string
	mirrors    db.MirrorOptions
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "YAML file overriding the built-in feeds, keywords and limits")
	flag.StringVar(&opts.outPath, "out", "", "Output artifact path (default "+config.DefaultOutputPath+")")
	flag.StringVar(&opts.parser, "parser", "", "Feed parser: tagscan or gofeed (default tagscan)")

	flag.StringVar(&opts.mirrors.MongoURI, "mongo-uri", "", "MongoDB connection string; mirrors curated items when set")
	flag.StringVar(&opts.mirrors.MongoDB, "mongo-db", "apinews", "MongoDB database name")
	flag.StringVar(&opts.mirrors.MongoCollection, "mongo-collection", "news_items", "MongoDB collection for curated items")

	flag.StringVar(&opts.mirrors.PostgresDSN, "postgres-dsn", "", "Postgres DSN; mirrors the result into news_item when set")

	flag.StringVar(&opts.mirrors.SQLitePath, "sqlite-path", "", "SQLite file; mirrors the result into news_item when set")

	flag.StringVar(&opts.mirrors.SupabaseURL, "supabase-url", "", "Supabase project URL")
	flag.StringVar(&opts.mirrors.SupabaseKey, "supabase-key", "", "Supabase API key (REST mode)")
	flag.StringVar(&opts.mirrors.SupabasePassword, "supabase-password", "", "Supabase database password (direct mode)")
	flag.Parse()

	if err := run(context.Background(), opts); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	publishers := []pipeline.Publisher{store.NewFileStore(cfg.OutputPath)}

	mirrors, closeAll, err := db.ConnectMirrors(ctx, opts.mirrors)
	defer closeAll()
	if err != nil {
		return err
	}
	for _, m := range mirrors {
		publishers = append(publishers, m)
	}

	client := httpclient.NewClient(cfg.UserAgent)
	feedFetcher := fetcher.NewFeedFetcher(client, parser.New(parser.Kind(cfg.Parser)), cfg.FetchTimeout)

	start := time.Now()
	log.Printf("Curating %d feeds with %d keywords", len(cfg.Feeds), len(cfg.Keywords))

	result, err := pipeline.NewPipeline(cfg, feedFetcher, publishers...).Run(ctx)
	if err != nil {
		return err
	}

	log.Printf("Done. %d items written to %s. Duration: %s", result.Count, cfg.OutputPath, time.Since(start))
	return nil
}

func loadConfig(opts options) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if opts.outPath != "" {
		cfg.OutputPath = opts.outPath
	}
	if opts.parser != "" {
		cfg.Parser = opts.parser
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
