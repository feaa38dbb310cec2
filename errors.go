package thesaurus

import "errors"

var (
	// ErrUnsupportedRelation indicates AddLabel was asked for a relation
	// other than altLabel or hiddenLabel.
	ErrUnsupportedRelation = errors.New("unsupported relation")

	// ErrEmptyLabel indicates AddLabel was called without a label.
	ErrEmptyLabel = errors.New("label cannot be empty")
)
