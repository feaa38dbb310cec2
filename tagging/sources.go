package tagging

import (
	"context"

	"github.com/poiesic/thesaurus/core"
)

// ConceptSource lists the concepts a batch run tags.
// storage.ConceptRepository satisfies it.
type ConceptSource interface {
	GetAllConcepts(ctx context.Context) ([]*core.Concept, error)
}

// GroupSource loads groups by ID and returns storage.ErrNotFound for
// unknown IDs. storage.GroupRepository satisfies it.
type GroupSource interface {
	GetGroup(ctx context.Context, id core.ID) (*core.Group, error)
}

// FacetResolver loads facets by ID and returns storage.ErrNotFound for
// unknown IDs. storage.FacetRepository satisfies it.
type FacetResolver interface {
	GetFacet(ctx context.Context, id core.ID) (*core.Facet, error)
}
