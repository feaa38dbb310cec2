package tagging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/poiesic/thesaurus/core"
	"github.com/poiesic/thesaurus/index"
	"github.com/poiesic/thesaurus/storage"
)

// Stats counts the work of one tagging run.
type Stats struct {
	// Queries is the number of update queries sent to the index.
	Queries int
	// Tagged is the number of documents the index reported as modified.
	Tagged int
	// Log holds one line per query that tagged documents, plus the
	// checking lines of verbose mode.
	Log []string
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.Queries += other.Queries
	s.Tagged += other.Tagged
	s.Log = append(s.Log, other.Log...)
}

// Tagger tags the documents matching one concept.
// It holds no per-run state and is safe for concurrent use when its
// connector and sources are.
type Tagger struct {
	connector    index.Connector
	groups       GroupSource
	facets       FacetResolver
	defaultFacet string
	verbose      bool
	strictGroups bool
	logger       *slog.Logger
}

// Option configures a Tagger.
type Option func(*Tagger) error

// WithGroups sets where the concept's groups and their parents are loaded from.
func WithGroups(groups GroupSource) Option {
	return func(t *Tagger) error {
		t.groups = groups
		return nil
	}
}

// WithFacets sets how facet IDs are resolved to index fields. Without a
// resolver every value goes to the default facet.
func WithFacets(facets FacetResolver) Option {
	return func(t *Tagger) error {
		t.facets = facets
		return nil
	}
}

// WithDefaultFacet sets the field used for values without a facet.
// Default is core.DefaultFacet.
func WithDefaultFacet(field string) Option {
	return func(t *Tagger) error {
		if field != "" {
			t.defaultFacet = field
		}
		return nil
	}
}

// WithVerbose adds a "Checking ..." line to the log before every query.
func WithVerbose(verbose bool) Option {
	return func(t *Tagger) error {
		t.verbose = verbose
		return nil
	}
}

// WithStrictGroups makes a looping group parent chain an error
// (ErrGroupCycle) instead of a warning.
func WithStrictGroups(strict bool) Option {
	return func(t *Tagger) error {
		t.strictGroups = strict
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tagger) error {
		if logger == nil {
			logger = slog.Default()
		}
		t.logger = logger
		return nil
	}
}

// NewTagger creates a Tagger that updates documents through connector.
func NewTagger(connector index.Connector, opts ...Option) (*Tagger, error) {
	if connector == nil {
		return nil, ErrConnectorRequired
	}

	t := &Tagger{
		connector:    connector,
		defaultFacet: core.DefaultFacet,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, err
		}
	}
	t.logger = t.logger.With("component", "tagger")
	return t, nil
}

// BuildPayload collects the facet values documents of concept are tagged
// with: the concept's own label (or query) under its facet, its direct tags,
// then the tags of each of its groups and their ancestors.
func (t *Tagger) BuildPayload(ctx context.Context, concept *core.Concept) (*index.Payload, error) {
	if concept == nil {
		return nil, ErrNilConcept
	}
	return t.buildPayload(ctx, concept, newFacetFields(t.facets, t.defaultFacet, t.logger))
}

func (t *Tagger) buildPayload(ctx context.Context, concept *core.Concept, fields *facetFields) (*index.Payload, error) {
	payload := index.NewPayload()

	field, err := fields.field(ctx, concept.FacetId)
	if err != nil {
		return nil, err
	}
	payload.Add(field, concept.Name())

	for _, tag := range concept.Tags {
		field, err := fields.field(ctx, tag.FacetId)
		if err != nil {
			return nil, err
		}
		payload.Add(field, tag.Label)
	}

	if len(concept.GroupIds) == 0 {
		return payload, nil
	}
	if t.groups == nil {
		return nil, ErrGroupSourceRequired
	}

	walker := &groupWalker{
		groups: t.groups,
		fields: fields,
		strict: t.strictGroups,
		logger: t.logger,
	}
	for _, id := range concept.GroupIds {
		group, err := t.groups.GetGroup(ctx, id)
		if errors.Is(err, storage.ErrNotFound) {
			t.logger.Warn("concept group not found, skipping", "concept", concept.Name(), "group", id)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load group %d: %w", id, err)
		}
		if err := walker.resolve(ctx, group, payload); err != nil {
			return nil, err
		}
	}
	return payload, nil
}

// TagConcept tags every not yet tagged document matching the concept, one
// of its alternates or one of its hidden labels with the concept's payload.
// The first index or storage error is returned.
func (t *Tagger) TagConcept(ctx context.Context, concept *core.Concept) (Stats, error) {
	var stats Stats
	if concept == nil {
		return stats, ErrNilConcept
	}
	name := concept.Name()

	if t.verbose {
		stats.Log = append(stats.Log, fmt.Sprintf("Checking concept: %s", name))
	}

	payload, err := t.buildPayload(ctx, concept, newFacetFields(t.facets, t.defaultFacet, t.logger))
	if err != nil {
		return stats, fmt.Errorf("build payload for concept %q: %w", name, err)
	}

	n, err := t.update(ctx, &stats, BuildQuery(concept.PrefLabel, concept.Query, concept.QueryType), payload)
	if err != nil {
		return stats, fmt.Errorf("tag concept %q: %w", name, err)
	}
	if n > 0 {
		stats.Log = append(stats.Log, fmt.Sprintf("Tagged %d yet untagged entries with tags of the concept \"%s\"", n, name))
	}

	for _, alt := range concept.Alternates {
		if t.verbose {
			stats.Log = append(stats.Log, fmt.Sprintf("Checking alias: %s", alt.Label))
		}
		n, err := t.update(ctx, &stats, BuildQuery(alt.Label, alt.Query, alt.QueryType), payload)
		if err != nil {
			return stats, fmt.Errorf("tag alias %q of concept %q: %w", alt.Label, name, err)
		}
		if n > 0 {
			stats.Log = append(stats.Log, fmt.Sprintf("Tagged %d yet untagged entries containing alias \"%s\" with tags of the concept \"%s\"", n, alt.Label, name))
		}
	}

	for _, hidden := range concept.Hidden {
		if t.verbose {
			stats.Log = append(stats.Log, fmt.Sprintf("Checking hidden label: %s", hidden.Label))
		}
		n, err := t.update(ctx, &stats, BuildQuery(hidden.Label, hidden.Query, hidden.QueryType), payload)
		if err != nil {
			return stats, fmt.Errorf("tag hidden label %q of concept %q: %w", hidden.Label, name, err)
		}
		if n > 0 {
			stats.Log = append(stats.Log, fmt.Sprintf("Tagged %d yet untagged entries containing hidden label \"%s\" with tags of the concept \"%s\"", n, hidden.Label, name))
		}
	}

	t.logger.Debug("tagged concept", "concept", name, "queries", stats.Queries, "tagged", stats.Tagged)
	return stats, nil
}

// update runs one query and counts it.
func (t *Tagger) update(ctx context.Context, stats *Stats, q index.Query, payload *index.Payload) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	t.logger.Debug("update by query", "q", q.Text, "defType", q.Params.Parser, "q.op", q.Params.Operator)

	stats.Queries++
	n, err := t.connector.UpdateByQuery(ctx, q, payload)
	if err != nil {
		return 0, err
	}
	stats.Tagged += n
	return n, nil
}
