package tagging

import "errors"

var (
	// ErrConnectorRequired is returned when a Tagger is created without a connector.
	ErrConnectorRequired = errors.New("index connector is required")

	// ErrTaggerRequired is returned when a BatchTagger is created without a tagger.
	ErrTaggerRequired = errors.New("tagger is required")

	// ErrConceptSourceRequired is returned when a BatchTagger has nothing to list concepts from.
	ErrConceptSourceRequired = errors.New("concept source is required")

	// ErrGroupSourceRequired is returned when a concept has groups but the
	// tagger cannot load them.
	ErrGroupSourceRequired = errors.New("group source is required for concepts with groups")

	// ErrGroupCycle is returned in strict mode when a group's parent chain
	// leads back to a group already visited.
	ErrGroupCycle = errors.New("group parent chain contains a cycle")

	// ErrNilConcept is returned when tagging a nil concept.
	ErrNilConcept = errors.New("concept is nil")
)
