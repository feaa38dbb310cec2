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

import (
	"fmt"
	"strings"
)

// ValidateConcept validates a Concept according to domain rules.
//
// Validation rules:
//   - PrefLabel or Query must be set
//   - QueryType of the concept and its aliases must be empty, PHRASE, OR or AND
//   - Alternate and hidden labels must not be empty
//
// NOT validated:
//   - referenced groups, facets and related concepts (weak references)
//   - ID (0 is valid before the concept is stored)
func ValidateConcept(concept *Concept) error {
	if concept == nil {
		return fmt.Errorf("%w: concept is nil", ErrInvalidConcept)
	}

	if strings.TrimSpace(concept.PrefLabel) == "" && strings.TrimSpace(concept.Query) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidConcept, ErrMissingLabelOrQuery)
	}

	if err := ValidateQueryType(concept.QueryType); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConcept, err)
	}

	for i, alt := range concept.Alternates {
		if strings.TrimSpace(alt.Label) == "" {
			return fmt.Errorf("%w: alternate %d: %w", ErrInvalidConcept, i, ErrEmptyLabel)
		}
		if err := ValidateQueryType(alt.QueryType); err != nil {
			return fmt.Errorf("%w: alternate %q: %w", ErrInvalidConcept, alt.Label, err)
		}
	}

	for i, hidden := range concept.Hidden {
		if strings.TrimSpace(hidden.Label) == "" {
			return fmt.Errorf("%w: hidden label %d: %w", ErrInvalidConcept, i, ErrEmptyLabel)
		}
		if err := ValidateQueryType(hidden.QueryType); err != nil {
			return fmt.Errorf("%w: hidden label %q: %w", ErrInvalidConcept, hidden.Label, err)
		}
	}

	for i, tag := range concept.Tags {
		if strings.TrimSpace(tag.Label) == "" {
			return fmt.Errorf("%w: tag %d: %w", ErrInvalidConcept, i, ErrEmptyLabel)
		}
	}

	return nil
}

// ValidateGroup validates a Group according to domain rules.
func ValidateGroup(group *Group) error {
	if group == nil {
		return fmt.Errorf("%w: group is nil", ErrInvalidGroup)
	}

	if strings.TrimSpace(group.PrefLabel) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidGroup, ErrEmptyLabel)
	}

	if group.Id != 0 && group.ParentId == group.Id {
		return fmt.Errorf("%w: %w", ErrInvalidGroup, ErrSelfParent)
	}

	for i, tag := range group.Tags {
		if strings.TrimSpace(tag.Label) == "" {
			return fmt.Errorf("%w: tag %d: %w", ErrInvalidGroup, i, ErrEmptyLabel)
		}
	}

	return nil
}

// ValidateFacet validates a Facet according to domain rules.
func ValidateFacet(facet *Facet) error {
	if facet == nil {
		return fmt.Errorf("%w: facet is nil", ErrInvalidFacet)
	}

	if facet.Field == "" {
		return fmt.Errorf("%w: %w", ErrInvalidFacet, ErrEmptyField)
	}

	if strings.ContainsFunc(facet.Field, isSpace) || strings.ContainsAny(facet.Field, fieldSyntaxChars) {
		return fmt.Errorf("%w: %q: %w", ErrInvalidFacet, facet.Field, ErrInvalidField)
	}

	return nil
}

// fieldSyntaxChars are query syntax characters not allowed in facet fields.
const fieldSyntaxChars = `:()[]{}"\^~*?!&|+/`

// ValidateQueryType validates that a QueryType has a known value.
// The empty QueryType is valid and means PHRASE.
func ValidateQueryType(qt QueryType) error {
	switch qt {
	case "", QueryTypePhrase, QueryTypeOr, QueryTypeAnd:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidQueryType, string(qt))
}

// ParseQueryType parses a query type name case-insensitively.
// An empty string yields the empty QueryType.
func ParseQueryType(s string) (QueryType, error) {
	qt := QueryType(strings.ToUpper(strings.TrimSpace(s)))
	if err := ValidateQueryType(qt); err != nil {
		return "", err
	}
	return qt, nil
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
