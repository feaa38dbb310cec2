// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidConcept indicates a Concept failed validation.
	ErrInvalidConcept = errors.New("invalid concept")

	// ErrInvalidGroup indicates a Group failed validation.
	ErrInvalidGroup = errors.New("invalid group")

	// ErrInvalidFacet indicates a Facet failed validation.
	ErrInvalidFacet = errors.New("invalid facet")

	// ErrMissingLabelOrQuery indicates a concept has neither a label nor a query.
	ErrMissingLabelOrQuery = errors.New("missing name or query")

	// ErrEmptyLabel indicates a required label is empty.
	ErrEmptyLabel = errors.New("label cannot be empty")

	// ErrEmptyField indicates a facet has no index field name.
	ErrEmptyField = errors.New("facet field cannot be empty")

	// ErrInvalidField indicates a facet field name contains whitespace or
	// query syntax characters.
	ErrInvalidField = errors.New("facet field cannot contain whitespace or query syntax")

	// ErrInvalidQueryType indicates an unknown QueryType value.
	ErrInvalidQueryType = errors.New("invalid query type")

	// ErrSelfParent indicates a group names itself as parent.
	ErrSelfParent = errors.New("group cannot be its own parent")
)
