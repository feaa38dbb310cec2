package config

import "errors"

var (
	ErrMissingDatabasePath = errors.New("config: database.path is required")
	ErrMissingIndexURL     = errors.New("config: index.url is required")
	ErrMissingIndexCore    = errors.New("config: index.core is required")
	ErrInvalidValue        = errors.New("config: invalid value")
)
