package replication

import (
	"context"
	"fmt"
	"log"
	"sync"

	"api-security-news/pkg/db"
	"api-security-news/pkg/domain"
)

// ArtifactReader loads the last published curation result
type ArtifactReader interface {
	Read() (*domain.CurationResult, error)
}

// Config wires the replication dependencies.
type Config struct {
	Source  ArtifactReader
	Mirrors []db.Mirror

	// Workers bounds how many mirrors are written at once; <= 0 means one per mirror.
	Workers int
}

// Replicator copies an already written artifact into the database mirrors
// without fetching any feed. It is a one-shot flow used to backfill a newly
// added mirror or to retry after a mirror outage.
type Replicator struct {
	source  ArtifactReader
	mirrors []db.Mirror
	workers int
}

func NewReplicator(cfg Config) (*Replicator, error) {
	if cfg.Source == nil {
		return nil, fmt.Errorf("artifact source is required")
	}
	if len(cfg.Mirrors) == 0 {
		return nil, fmt.Errorf("at least one mirror is required")
	}

	workers := cfg.Workers
	if workers <= 0 || workers > len(cfg.Mirrors) {
		workers = len(cfg.Mirrors)
	}

	return &Replicator{
		source:  cfg.Source,
		mirrors: cfg.Mirrors,
		workers: workers,
	}, nil
}

// Replicate reads the artifact and publishes it to every mirror.
// All mirrors are attempted; the returned error reports the first failure.
func (r *Replicator) Replicate(ctx context.Context) (*domain.CurationResult, error) {
	result, err := r.source.Read()
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	if result.Count != len(result.Items) {
		return nil, fmt.Errorf("artifact is inconsistent: itemCount %d, %d items", result.Count, len(result.Items))
	}

	log.Printf("Replicating %d items generated at %s to %d mirrors", result.Count, result.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"), len(r.mirrors))

	succeeded, err := r.publishAll(ctx, result)
	log.Printf("Replication complete: %d/%d mirrors updated", succeeded, len(r.mirrors))
	if err != nil {
		return nil, err
	}
	return result, nil
}

// publishAll fans the result out to a bounded set of workers and collects every outcome.
func (r *Replicator) publishAll(ctx context.Context, result *domain.CurationResult) (int, error) {
	type job struct {
		index  int
		mirror db.Mirror
	}

	jobs := make(chan job, len(r.mirrors))
	errs := make(chan error, len(r.mirrors))

	for i, m := range r.mirrors {
		jobs <- job{index: i, mirror: m}
	}
	close(jobs)

	var wg sync.WaitGroup
	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				if err := j.mirror.Publish(ctx, result); err != nil {
					log.Printf("Mirror %d: replication failed: %v", j.index, err)
					errs <- fmt.Errorf("mirror %d: %w", j.index, err)
					continue
				}
				errs <- nil
			}
		}()
	}

	go func() {
		wg.Wait()
		close(errs)
	}()

	succeeded := 0
	var firstErr error
	for err := range errs {
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		succeeded++
	}

	return succeeded, firstErr
}
