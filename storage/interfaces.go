package storage

import (
	"context"

	"github.com/poiesic/thesaurus/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the repository and releases resources.
	Close() error
}

// ConceptRepository provides operations for managing concepts together with
// their owned alternates, hidden labels and tags.
type ConceptRepository interface {
	Repository
	// AddConcepts adds one or more concepts to storage.
	// IDs are generated from a sequence; InsertedAt and UpdatedAt are set.
	// Returns ErrDuplicateKey if a preferred label is already in use.
	AddConcepts(ctx context.Context, concepts ...*core.Concept) ([]*core.Concept, error)

	// UpdateConcepts replaces existing concepts.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any concept doesn't exist.
	UpdateConcepts(ctx context.Context, concepts ...*core.Concept) ([]*core.Concept, error)

	// DeleteConcepts removes concepts and everything they own.
	// Returns ErrNotFound if any concept doesn't exist.
	DeleteConcepts(ctx context.Context, ids ...core.ID) error

	// GetConcept retrieves a single concept by ID.
	// Returns ErrNotFound if the concept doesn't exist.
	GetConcept(ctx context.Context, id core.ID) (*core.Concept, error)

	// GetConcepts retrieves multiple concepts by their IDs.
	// Returns only the concepts that exist (no error for missing concepts).
	GetConcepts(ctx context.Context, ids ...core.ID) ([]*core.Concept, error)

	// GetAllConcepts retrieves every concept ordered by ID.
	GetAllConcepts(ctx context.Context) ([]*core.Concept, error)

	// FindConceptByLabel finds a concept by its preferred label (case-insensitive).
	// Returns ErrNotFound if no concept carries the label.
	FindConceptByLabel(ctx context.Context, label string) (*core.Concept, error)
}

// GroupRepository provides operations for managing groups and their group tags.
type GroupRepository interface {
	Repository
	// AddGroups adds one or more groups to storage.
	// IDs are generated from a sequence; InsertedAt and UpdatedAt are set.
	// Returns ErrDuplicateKey if a preferred label is already in use.
	AddGroups(ctx context.Context, groups ...*core.Group) ([]*core.Group, error)

	// UpdateGroups replaces existing groups.
	// Returns ErrNotFound if any group doesn't exist.
	UpdateGroups(ctx context.Context, groups ...*core.Group) ([]*core.Group, error)

	// DeleteGroups removes groups by their IDs. Children keep their
	// (now dangling) parent reference.
	// Returns ErrNotFound if any group doesn't exist.
	DeleteGroups(ctx context.Context, ids ...core.ID) error

	// GetGroup retrieves a single group by ID.
	// Returns ErrNotFound if the group doesn't exist.
	GetGroup(ctx context.Context, id core.ID) (*core.Group, error)

	// GetAllGroups retrieves every group ordered by ID.
	GetAllGroups(ctx context.Context) ([]*core.Group, error)

	// FindGroupByLabel finds a group by its preferred label (case-insensitive).
	// Returns ErrNotFound if no group carries the label.
	FindGroupByLabel(ctx context.Context, label string) (*core.Group, error)
}

// FacetRepository provides operations for managing index facets.
type FacetRepository interface {
	Repository
	// AddFacets adds or replaces facets. IDs are content-based
	// (IDFromContent of the field name), so adding a field twice is an upsert.
	AddFacets(ctx context.Context, facets ...*core.Facet) ([]*core.Facet, error)

	// DeleteFacets removes facets by their IDs.
	// Returns ErrNotFound if any facet doesn't exist.
	DeleteFacets(ctx context.Context, ids ...core.ID) error

	// GetFacet retrieves a single facet by ID.
	// Returns ErrNotFound if the facet doesn't exist.
	GetFacet(ctx context.Context, id core.ID) (*core.Facet, error)

	// GetAllFacets retrieves every facet.
	GetAllFacets(ctx context.Context) ([]*core.Facet, error)
}
