package badger

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/thesaurus/core"
	"github.com/poiesic/thesaurus/storage"
)

// FacetRepository implements storage.FacetRepository for BadgerDB.
// Facet IDs are derived from the field name.
type FacetRepository struct {
	backend *Backend
}

var _ storage.FacetRepository = (*FacetRepository)(nil)

// NewFacetRepository creates a new FacetRepository.
func NewFacetRepository(backend *Backend) (*FacetRepository, error) {
	return &FacetRepository{
		backend: backend,
	}, nil
}

// Close releases resources. FacetRepository has no resources to release.
func (r *FacetRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *FacetRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddFacets adds or replaces facets.
func (r *FacetRepository) AddFacets(ctx context.Context, facets ...*core.Facet) ([]*core.Facet, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, facet := range facets {
			if err := core.ValidateFacet(facet); err != nil {
				return err
			}
			facet.Id = core.IDFromContent(facet.Field)
			if err := tx.Set(makeFacetKey(facet.Id), storage.MarshalFacet(facet)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}

	return facets, nil
}

// DeleteFacets removes facets by their IDs.
func (r *FacetRepository) DeleteFacets(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeFacetKey(id)
			facet, err := readValue(tx, key, storage.UnmarshalFacet)
			if err != nil {
				return err
			}
			if facet == nil {
				return fmt.Errorf("facet %d: %w", id, storage.ErrNotFound)
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetFacet retrieves a single facet by ID.
func (r *FacetRepository) GetFacet(ctx context.Context, id core.ID) (*core.Facet, error) {
	var result *core.Facet
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readValue(tx, makeFacetKey(id), storage.UnmarshalFacet)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetAllFacets retrieves all facets.
func (r *FacetRepository) GetAllFacets(ctx context.Context) ([]*core.Facet, error) {
	var results []*core.Facet
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		results, err = scanPrefix(tx, []byte(facetRecordPrefix), storage.UnmarshalFacet)
		return err
	}, false)
	return results, err
}
