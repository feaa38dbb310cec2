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

// ResolveGroupTags adds the tags contributed by group and all of its
// ancestors to payload.
//
// A group with a facet adds its own label under that facet. Every group tag
// adds its label under its own facet, or defaultFacet. The walk then moves
// to the parent until it reaches a root. A parent chain that loops back on
// itself or points at a deleted group ends the walk with a warning.
func ResolveGroupTags(ctx context.Context, groups GroupSource, facets FacetResolver, group *core.Group, defaultFacet string, payload *index.Payload) error {
	w := &groupWalker{
		groups: groups,
		fields: newFacetFields(facets, defaultFacet, slog.Default()),
		logger: slog.Default(),
	}
	return w.resolve(ctx, group, payload)
}

type groupWalker struct {
	groups GroupSource
	fields *facetFields
	strict bool
	logger *slog.Logger
}

func (w *groupWalker) resolve(ctx context.Context, group *core.Group, payload *index.Payload) error {
	visited := make(map[core.ID]struct{})

	for current := group; current != nil; {
		if _, seen := visited[current.Id]; seen {
			w.logger.Warn("group parent chain loops, stopping", "group", current.PrefLabel, "id", current.Id)
			if w.strict {
				return fmt.Errorf("%w: group %q", ErrGroupCycle, current.PrefLabel)
			}
			return nil
		}
		visited[current.Id] = struct{}{}

		if current.FacetId != 0 {
			field, err := w.fields.field(ctx, current.FacetId)
			if err != nil {
				return err
			}
			payload.Add(field, current.PrefLabel)
		}

		for _, tag := range current.Tags {
			field, err := w.fields.field(ctx, tag.FacetId)
			if err != nil {
				return err
			}
			payload.Add(field, tag.Label)
		}

		if current.ParentId == 0 {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if w.groups == nil {
			return ErrGroupSourceRequired
		}

		parent, err := w.groups.GetGroup(ctx, current.ParentId)
		if errors.Is(err, storage.ErrNotFound) {
			w.logger.Warn("group parent not found, stopping", "group", current.PrefLabel, "parent", current.ParentId)
			return nil
		}
		if err != nil {
			return fmt.Errorf("load parent of group %q: %w", current.PrefLabel, err)
		}
		current = parent
	}
	return nil
}

// facetFields resolves facet IDs to index field names, caching lookups for
// the lifetime of one tagging run.
type facetFields struct {
	resolver     FacetResolver
	defaultFacet string
	cache        map[core.ID]string
	logger       *slog.Logger
}

func newFacetFields(resolver FacetResolver, defaultFacet string, logger *slog.Logger) *facetFields {
	if defaultFacet == "" {
		defaultFacet = core.DefaultFacet
	}
	return &facetFields{
		resolver:     resolver,
		defaultFacet: defaultFacet,
		cache:        make(map[core.ID]string),
		logger:       logger,
	}
}

// field returns the field of the facet id, or the default facet for id 0.
// Unknown facets fall back to the default facet.
func (f *facetFields) field(ctx context.Context, id core.ID) (string, error) {
	if id == 0 {
		return f.defaultFacet, nil
	}
	if field, ok := f.cache[id]; ok {
		return field, nil
	}

	field := f.defaultFacet
	if f.resolver == nil {
		f.logger.Warn("no facet resolver, using default facet", "facet", id, "default", f.defaultFacet)
	} else {
		facet, err := f.resolver.GetFacet(ctx, id)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			f.logger.Warn("facet not found, using default facet", "facet", id, "default", f.defaultFacet)
		case err != nil:
			return "", fmt.Errorf("load facet %d: %w", id, err)
		default:
			field = facet.Field
		}
	}

	f.cache[id] = field
	return field, nil
}
