// Package fetcher retrieves single feeds. A failing feed yields no items and
// never an error, so one bad source cannot affect the others.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"api-security-news/pkg/domain"
	"api-security-news/pkg/httpclient"
	"api-security-news/pkg/parser"
)

// maxBodySize bounds how much of a feed response is read
const maxBodySize = 10 << 20

// FeedFetcher downloads and parses one feed per call
type FeedFetcher struct {
	client  *httpclient.HTTPClient
	parser  parser.Parser
	timeout time.Duration
}

// NewFeedFetcher creates a new feed fetcher; each FetchFeed call is bounded by timeout
func NewFeedFetcher(client *httpclient.HTTPClient, p parser.Parser, timeout time.Duration) *FeedFetcher {
	return &FeedFetcher{
		client:  client,
		parser:  p,
		timeout: timeout,
	}
}

// FetchFeed makes a single bounded attempt at source and returns its items.
// Any failure is logged and degrades to an empty slice.
func (f *FeedFetcher) FetchFeed(ctx context.Context, source domain.FeedSource) []domain.NewsItem {
	items, err := f.fetch(ctx, source)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			log.Printf("FeedFetcher: [warn] %s: timed out after %s", source.Label, f.timeout)
		} else {
			log.Printf("FeedFetcher: [err] %s: %v", source.Label, err)
		}
		return []domain.NewsItem{}
	}

	log.Printf("FeedFetcher: [ok] %s: %d items", source.Label, len(items))
	return items
}

func (f *FeedFetcher) fetch(ctx context.Context, source domain.FeedSource) ([]domain.NewsItem, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	body, err := f.download(ctx, source.URL)
	if err != nil {
		return nil, err
	}

	items, err := f.parser.Parse(body, source.Label)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed %s: %w", source.URL, err)
	}
	if items == nil {
		items = []domain.NewsItem{}
	}
	return items, nil
}

func (f *FeedFetcher) download(ctx context.Context, url string) ([]byte, error) {
	resp, err := f.client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("received non-success status code %d from %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body from %s: %w", url, err)
	}
	return body, nil
}
