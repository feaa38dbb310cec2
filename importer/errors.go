package importer

import "errors"

var (
	// ErrInvalidFile indicates the thesaurus file could not be parsed.
	ErrInvalidFile = errors.New("invalid thesaurus file")

	// ErrUnknownGroup indicates a group label that is neither in the file
	// nor in storage.
	ErrUnknownGroup = errors.New("unknown group")

	// ErrUnknownConcept indicates a related concept label that is neither
	// in the file nor in storage.
	ErrUnknownConcept = errors.New("unknown concept")

	// ErrRepositoryRequired indicates a nil repository was passed to New.
	ErrRepositoryRequired = errors.New("repository is required")
)
