package badger

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/thesaurus/core"
	"github.com/poiesic/thesaurus/storage"
)

// GroupRepository implements storage.GroupRepository for BadgerDB.
type GroupRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.GroupRepository = (*GroupRepository)(nil)

// NewGroupRepository creates a new GroupRepository.
func NewGroupRepository(backend *Backend) (*GroupRepository, error) {
	idSeq, err := backend.GetSequence(groupIDSeq)
	if err != nil {
		return nil, err
	}

	return &GroupRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *GroupRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *GroupRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddGroups adds one or more groups to storage. A non-zero ParentId must
// refer to a stored group or to a group added earlier in the same call.
func (r *GroupRepository) AddGroups(ctx context.Context, groups ...*core.Group) ([]*core.Group, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, group := range groups {
			if err := core.ValidateGroup(group); err != nil {
				return err
			}
			if err := checkLabelFree(tx, makeGroupLabelKey(group.PrefLabel), 0); err != nil {
				return fmt.Errorf("group %q: %w", group.PrefLabel, err)
			}
			if err := checkParent(tx, group); err != nil {
				return err
			}

			nextID, err := nextID(r.idSeq)
			if err != nil {
				return err
			}
			group.Id = core.ID(nextID)

			group.InsertedAt = now()
			group.UpdatedAt = group.InsertedAt

			if err := putGroup(tx, group); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}

	return groups, nil
}

// UpdateGroups replaces existing groups.
func (r *GroupRepository) UpdateGroups(ctx context.Context, groups ...*core.Group) ([]*core.Group, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, group := range groups {
			if err := core.ValidateGroup(group); err != nil {
				return err
			}

			old, err := readValue(tx, makeGroupKey(group.Id), storage.UnmarshalGroup)
			if err != nil {
				return err
			}
			if old == nil {
				return fmt.Errorf("group %d: %w", group.Id, storage.ErrNotFound)
			}

			if old.ParentId != group.ParentId {
				if err := checkParent(tx, group); err != nil {
					return err
				}
			}

			if core.NormalizeLabel(old.PrefLabel) != core.NormalizeLabel(group.PrefLabel) {
				if err := checkLabelFree(tx, makeGroupLabelKey(group.PrefLabel), group.Id); err != nil {
					return fmt.Errorf("group %q: %w", group.PrefLabel, err)
				}
				if err := tx.Delete(makeGroupLabelKey(old.PrefLabel)); err != nil {
					return err
				}
			}

			group.InsertedAt = old.InsertedAt
			group.UpdatedAt = now()

			if err := putGroup(tx, group); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}

	return groups, nil
}

// DeleteGroups removes groups by their IDs. Child groups and member concepts
// are not touched.
func (r *GroupRepository) DeleteGroups(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeGroupKey(id)

			group, err := readValue(tx, key, storage.UnmarshalGroup)
			if err != nil {
				return err
			}
			if group == nil {
				return fmt.Errorf("group %d: %w", id, storage.ErrNotFound)
			}

			if err := tx.Delete(makeGroupLabelKey(group.PrefLabel)); err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetGroup retrieves a single group by ID.
func (r *GroupRepository) GetGroup(ctx context.Context, id core.ID) (*core.Group, error) {
	var result *core.Group
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readValue(tx, makeGroupKey(id), storage.UnmarshalGroup)
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

// GetAllGroups retrieves all groups ordered by ID.
func (r *GroupRepository) GetAllGroups(ctx context.Context) ([]*core.Group, error) {
	var results []*core.Group
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		results, err = scanPrefix(tx, []byte(groupRecordPrefix), storage.UnmarshalGroup)
		return err
	}, false)
	return results, err
}

// FindGroupByLabel finds a group by its preferred label.
func (r *GroupRepository) FindGroupByLabel(ctx context.Context, label string) (*core.Group, error) {
	var result *core.Group
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		id, err := readIndex(tx, makeGroupLabelKey(label))
		if err != nil {
			return err
		}
		result, err = readValue(tx, makeGroupKey(core.ID(id)), storage.UnmarshalGroup)
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

func putGroup(tx *badger.Txn, group *core.Group) error {
	if err := tx.Set(makeGroupKey(group.Id), storage.MarshalGroup(group)); err != nil {
		return err
	}
	return tx.Set(makeGroupLabelKey(group.PrefLabel), storage.MarshalID(group.Id))
}

func checkParent(tx *badger.Txn, group *core.Group) error {
	if group.ParentId == 0 {
		return nil
	}
	parent, err := readValue(tx, makeGroupKey(group.ParentId), storage.UnmarshalGroup)
	if err != nil {
		return err
	}
	if parent == nil {
		return fmt.Errorf("group %q: parent %d: %w", group.PrefLabel, group.ParentId, storage.ErrDanglingReference)
	}
	return nil
}
