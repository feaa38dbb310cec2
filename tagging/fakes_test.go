package tagging

import (
	"context"
	"errors"

	"github.com/poiesic/thesaurus/core"
	"github.com/poiesic/thesaurus/storage"
)

type fakeGroups map[core.ID]*core.Group

func (f fakeGroups) GetGroup(ctx context.Context, id core.ID) (*core.Group, error) {
	g, ok := f[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return g, nil
}

type fakeFacets map[core.ID]*core.Facet

func (f fakeFacets) GetFacet(ctx context.Context, id core.ID) (*core.Facet, error) {
	facet, ok := f[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return facet, nil
}

type fakeConcepts struct {
	concepts []*core.Concept
	err      error
}

func (f fakeConcepts) GetAllConcepts(ctx context.Context) ([]*core.Concept, error) {
	return f.concepts, f.err
}

var errIndexDown = errors.New("index down")
