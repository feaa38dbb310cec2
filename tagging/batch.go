package tagging

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/thesaurus/core"
)

// BatchTagger runs a Tagger over every concept of a ConceptSource.
type BatchTagger struct {
	tagger           *Tagger
	concepts         ConceptSource
	workers          int
	progress         io.Writer
	progressInterval int
}

// BatchOption configures a BatchTagger.
type BatchOption func(*BatchTagger) error

// WithWorkers sets how many concepts are tagged concurrently.
// Default is 1, which tags concepts one after another.
func WithWorkers(n int) BatchOption {
	return func(b *BatchTagger) error {
		if n < 1 {
			n = 1
		}
		b.workers = n
		return nil
	}
}

// WithProgress reports progress to w every interval concepts.
func WithProgress(w io.Writer, interval int) BatchOption {
	return func(b *BatchTagger) error {
		b.progress = w
		b.progressInterval = interval
		return nil
	}
}

// NewBatchTagger creates a BatchTagger.
func NewBatchTagger(tagger *Tagger, concepts ConceptSource, opts ...BatchOption) (*BatchTagger, error) {
	if tagger == nil {
		return nil, ErrTaggerRequired
	}
	if concepts == nil {
		return nil, ErrConceptSourceRequired
	}

	b := &BatchTagger{
		tagger:   tagger,
		concepts: concepts,
		workers:  1,
	}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// TagAll tags every concept. A concept that fails is recorded in the report
// and the run continues. The returned error is only set when the concepts
// cannot be listed or ctx is cancelled.
func (b *BatchTagger) TagAll(ctx context.Context) (*Report, error) {
	concepts, err := b.concepts.GetAllConcepts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list concepts: %w", err)
	}

	var tracker *ProgressTracker
	if b.progress != nil {
		tracker = NewProgressTracker(b.progress, len(concepts), b.progressInterval)
		tracker.Start()
		defer tracker.Finish()
	}

	results := make([]ConceptResult, len(concepts))
	if b.workers <= 1 {
		err = b.tagSequential(ctx, concepts, results, tracker)
	} else {
		err = b.tagPooled(ctx, concepts, results, tracker)
	}
	if err != nil {
		return nil, err
	}

	report := NewReport(results)
	b.tagger.logger.Info("batch tagging finished",
		"concepts", len(concepts), "queries", report.Queries, "tagged", report.Tagged, "failed", report.Failed)
	return report, nil
}

func (b *BatchTagger) tagSequential(ctx context.Context, concepts []*core.Concept, results []ConceptResult, tracker *ProgressTracker) error {
	for i, concept := range concepts {
		if err := ctx.Err(); err != nil {
			return err
		}
		results[i] = b.tagOne(ctx, concept)
		if tracker != nil {
			tracker.Increment(1)
		}
	}
	return nil
}

// tagPooled tags concepts on an ants pool. Each worker writes only its own
// slot of results, so the report keeps concept order.
func (b *BatchTagger) tagPooled(ctx context.Context, concepts []*core.Concept, results []ConceptResult, tracker *ProgressTracker) error {
	pool, err := ants.NewPool(b.workers)
	if err != nil {
		return err
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i, concept := range concepts {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			results[i] = b.tagOne(ctx, concept)
			if tracker != nil {
				tracker.Increment(1)
			}
		})
		if err != nil {
			wg.Done()
			results[i] = ConceptResult{Concept: concept, Err: err}
		}
	}
	wg.Wait()

	return ctx.Err()
}

func (b *BatchTagger) tagOne(ctx context.Context, concept *core.Concept) ConceptResult {
	stats, err := b.tagger.TagConcept(ctx, concept)
	if err != nil {
		b.tagger.logger.Warn("tagging concept failed", "concept", concept.Name(), "error", err)
		return ConceptResult{Concept: concept, Err: err}
	}
	return ConceptResult{Concept: concept, Stats: stats}
}
