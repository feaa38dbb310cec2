package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/thesaurus/core"
	"github.com/poiesic/thesaurus/storage"
)

// ConceptRepository implements storage.ConceptRepository for BadgerDB.
type ConceptRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.ConceptRepository = (*ConceptRepository)(nil)

// NewConceptRepository creates a new ConceptRepository.
func NewConceptRepository(backend *Backend) (*ConceptRepository, error) {
	idSeq, err := backend.GetSequence(conceptIDSeq)
	if err != nil {
		return nil, err
	}

	return &ConceptRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *ConceptRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *ConceptRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddConcepts adds one or more concepts to storage.
func (r *ConceptRepository) AddConcepts(ctx context.Context, concepts ...*core.Concept) ([]*core.Concept, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, concept := range concepts {
			if err := core.ValidateConcept(concept); err != nil {
				return err
			}

			if concept.PrefLabel != "" {
				if err := checkLabelFree(tx, makeConceptLabelKey(concept.PrefLabel), 0); err != nil {
					return fmt.Errorf("concept %q: %w", concept.PrefLabel, err)
				}
			}

			nextID, err := nextID(r.idSeq)
			if err != nil {
				return err
			}
			concept.Id = core.ID(nextID)

			concept.InsertedAt = now()
			concept.UpdatedAt = concept.InsertedAt

			if err := putConcept(tx, concept); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}

	return concepts, nil
}

// UpdateConcepts replaces existing concepts.
func (r *ConceptRepository) UpdateConcepts(ctx context.Context, concepts ...*core.Concept) ([]*core.Concept, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, concept := range concepts {
			if err := core.ValidateConcept(concept); err != nil {
				return err
			}

			old, err := readValue(tx, makeConceptKey(concept.Id), storage.UnmarshalConcept)
			if err != nil {
				return err
			}
			if old == nil {
				return fmt.Errorf("concept %d: %w", concept.Id, storage.ErrNotFound)
			}

			if core.NormalizeLabel(old.PrefLabel) != core.NormalizeLabel(concept.PrefLabel) {
				if concept.PrefLabel != "" {
					if err := checkLabelFree(tx, makeConceptLabelKey(concept.PrefLabel), concept.Id); err != nil {
						return fmt.Errorf("concept %q: %w", concept.PrefLabel, err)
					}
				}
				if old.PrefLabel != "" {
					if err := tx.Delete(makeConceptLabelKey(old.PrefLabel)); err != nil {
						return err
					}
				}
			}

			concept.InsertedAt = old.InsertedAt
			concept.UpdatedAt = now()

			if err := putConcept(tx, concept); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}

	return concepts, nil
}

// DeleteConcepts removes concepts by their IDs. Aliases and tags live inside
// the concept record and go with it.
func (r *ConceptRepository) DeleteConcepts(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeConceptKey(id)

			concept, err := readValue(tx, key, storage.UnmarshalConcept)
			if err != nil {
				return err
			}
			if concept == nil {
				return fmt.Errorf("concept %d: %w", id, storage.ErrNotFound)
			}

			if concept.PrefLabel != "" {
				if err := tx.Delete(makeConceptLabelKey(concept.PrefLabel)); err != nil {
					return err
				}
			}

			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetConcept retrieves a single concept by ID.
func (r *ConceptRepository) GetConcept(ctx context.Context, id core.ID) (*core.Concept, error) {
	var result *core.Concept
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readValue(tx, makeConceptKey(id), storage.UnmarshalConcept)
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

// GetConcepts retrieves multiple concepts by their IDs.
func (r *ConceptRepository) GetConcepts(ctx context.Context, ids ...core.ID) ([]*core.Concept, error) {
	var result []*core.Concept
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			concept, err := readValue(tx, makeConceptKey(id), storage.UnmarshalConcept)
			if err != nil {
				return err
			}
			if concept != nil {
				result = append(result, concept)
			}
		}
		return nil
	}, false)
	return result, err
}

// GetAllConcepts retrieves all concepts ordered by ID.
func (r *ConceptRepository) GetAllConcepts(ctx context.Context) ([]*core.Concept, error) {
	var results []*core.Concept
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		results, err = scanPrefix(tx, []byte(conceptRecordPrefix), storage.UnmarshalConcept)
		return err
	}, false)
	return results, err
}

// FindConceptByLabel finds a concept by its preferred label.
func (r *ConceptRepository) FindConceptByLabel(ctx context.Context, label string) (*core.Concept, error) {
	var result *core.Concept
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		id, err := readIndex(tx, makeConceptLabelKey(label))
		if err != nil {
			return err
		}
		result, err = readValue(tx, makeConceptKey(core.ID(id)), storage.UnmarshalConcept)
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

func putConcept(tx *badger.Txn, concept *core.Concept) error {
	if err := tx.Set(makeConceptKey(concept.Id), storage.MarshalConcept(concept)); err != nil {
		return err
	}
	if concept.PrefLabel == "" {
		return nil
	}
	return tx.Set(makeConceptLabelKey(concept.PrefLabel), storage.MarshalID(concept.Id))
}

// checkLabelFree fails with storage.ErrDuplicateKey when the label index
// key already points at a record other than owner.
func checkLabelFree(tx *badger.Txn, key []byte, owner core.ID) error {
	id, err := readIndex(tx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if owner != 0 && core.ID(id) == owner {
		return nil
	}
	return storage.ErrDuplicateKey
}
