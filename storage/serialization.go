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


package storage

import (
	"fmt"

	"github.com/poiesic/thesaurus/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	if err != nil {
		return 0, fmt.Errorf("%w: id: %w", ErrSerializationFailed, err)
	}
	return id, nil
}

// MarshalConcept serializes a Concept, including its owned aliases and tags, to bytes.
func MarshalConcept(concept *core.Concept) []byte {
	buf := make([]byte, core.ConceptMUS.Size(*concept))
	core.ConceptMUS.Marshal(*concept, buf)
	return buf
}

// UnmarshalConcept deserializes a Concept from bytes.
func UnmarshalConcept(data []byte) (*core.Concept, error) {
	concept, _, err := core.ConceptMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: concept: %w", ErrSerializationFailed, err)
	}
	return &concept, nil
}

// MarshalGroup serializes a Group to bytes.
func MarshalGroup(group *core.Group) []byte {
	buf := make([]byte, core.GroupMUS.Size(*group))
	core.GroupMUS.Marshal(*group, buf)
	return buf
}

// UnmarshalGroup deserializes a Group from bytes.
func UnmarshalGroup(data []byte) (*core.Group, error) {
	group, _, err := core.GroupMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: group: %w", ErrSerializationFailed, err)
	}
	return &group, nil
}

// MarshalFacet serializes a Facet to bytes.
func MarshalFacet(facet *core.Facet) []byte {
	buf := make([]byte, core.FacetMUS.Size(*facet))
	core.FacetMUS.Marshal(*facet, buf)
	return buf
}

// UnmarshalFacet deserializes a Facet from bytes.
func UnmarshalFacet(data []byte) (*core.Facet, error) {
	facet, _, err := core.FacetMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: facet: %w", ErrSerializationFailed, err)
	}
	return &facet, nil
}
