package pipeline

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"api-security-news/pkg/config"
	"api-security-news/pkg/domain"
	"api-security-news/pkg/filter"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// FeedFetcher retrieves the items of one feed. Implementations absorb their own
// failures and return an empty slice instead of an error.
type FeedFetcher interface {
	FetchFeed(ctx context.Context, source domain.FeedSource) []domain.NewsItem
}

// Publisher persists a finished curation result (JSON artifact, database mirror, ...)
type Publisher interface {
	Publish(ctx context.Context, result *domain.CurationResult) error
}

// Pipeline fetches every configured feed, curates the merged items and publishes the result
type Pipeline struct {
	cfg        *config.Config
	fetcher    FeedFetcher
	publishers []Publisher
	now        func() time.Time
}

// NewPipeline creates a new pipeline for cfg
func NewPipeline(cfg *config.Config, fetcher FeedFetcher, publishers ...Publisher) *Pipeline {
	return &Pipeline{
		cfg:        cfg,
		fetcher:    fetcher,
		publishers: publishers,
		now:        time.Now,
	}
}

// SetClock replaces the time source used for the recency window and GeneratedAt
func (p *Pipeline) SetClock(now func() time.Time) {
	p.now = now
}

// Run executes one curation pass:
// 1. Fetch all feeds concurrently and wait for every one to settle
// 2. Keep relevant, recent, non-duplicate items
// 3. Sort newest first and cap to MaxItems
// 4. Publish the result through every publisher
func (p *Pipeline) Run(ctx context.Context) (*domain.CurationResult, error) {
	if len(p.cfg.Feeds) == 0 {
		return nil, fmt.Errorf("pipeline has no feeds")
	}
	if p.fetcher == nil {
		return nil, fmt.Errorf("feed fetcher is not set")
	}

	runID := uuid.NewString()
	log.Printf("Pipeline: run %s started", runID)

	candidates := p.fetchAll(ctx)
	log.Printf("Pipeline: %d candidate items from %d feeds", len(candidates), len(p.cfg.Feeds))

	now := p.now()
	items, err := p.Curate(ctx, candidates, now)
	if err != nil {
		return nil, err
	}

	result := domain.NewCurationResult(now, items)
	result.RunID = runID
	if err := p.publish(ctx, result); err != nil {
		return nil, err
	}

	return result, nil
}

// fetchAll runs one fetch per feed and concatenates the results in feed order.
// Each goroutine only writes its own slot, so no locking is needed.
func (p *Pipeline) fetchAll(ctx context.Context) []domain.NewsItem {
	results := make([][]domain.NewsItem, len(p.cfg.Feeds))
	var wg sync.WaitGroup

	for i, source := range p.cfg.Feeds {
		wg.Add(1)
		go func(i int, source domain.FeedSource) {
			defer wg.Done()
			results[i] = p.fetcher.FetchFeed(ctx, source)
		}(i, source)
	}
	wg.Wait()

	var merged []domain.NewsItem
	for _, items := range results {
		merged = append(merged, items...)
	}
	return merged
}

// Curate filters, orders and caps the candidate pool relative to now
func (p *Pipeline) Curate(ctx context.Context, candidates []domain.NewsItem, now time.Time) ([]domain.NewsItem, error) {
	relevant, err := filter.FilterItems(ctx, candidates, filter.NewRelevanceFilter(p.cfg.Keywords))
	if err != nil {
		return nil, fmt.Errorf("relevance filter: %w", err)
	}
	log.Printf("Pipeline: %d relevant items", len(relevant))

	recent, err := filter.FilterItems(ctx, relevant, filter.NewRecencyFilter(now, p.cfg.RecencyWindow))
	if err != nil {
		return nil, fmt.Errorf("recency filter: %w", err)
	}
	log.Printf("Pipeline: %d items within %s", len(recent), p.cfg.RecencyWindow)

	unique, err := filter.FilterItems(ctx, recent, filter.NewDuplicateLinkFilter())
	if err != nil {
		return nil, fmt.Errorf("duplicate filter: %w", err)
	}
	if dropped := len(recent) - len(unique); dropped > 0 {
		log.Printf("Pipeline: dropped %d duplicate links", dropped)
	}

	sortNewestFirst(unique)

	if len(unique) > p.cfg.MaxItems {
		unique = unique[:p.cfg.MaxItems]
	}
	log.Printf("Pipeline: keeping %d items", len(unique))
	return unique, nil
}

// sortNewestFirst orders dated items descending; undated items sink to the end
func sortNewestFirst(items []domain.NewsItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].PublishedAt, items[j].PublishedAt
		if a == nil || b == nil {
			return a != nil && b == nil
		}
		return a.After(*b)
	})
}

// publish hands the result to all publishers concurrently; the first error wins
func (p *Pipeline) publish(ctx context.Context, result *domain.CurationResult) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, pub := range p.publishers {
		g.Go(func() error {
			return pub.Publish(gctx, result)
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to publish curation result: %w", err)
	}
	return nil
}
