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


package badger

import "github.com/poiesic/thesaurus/storage"

// Repositories bundles the repositories opened on one backend.
type Repositories struct {
	Concepts storage.ConceptRepository
	Groups   storage.GroupRepository
	Facets   storage.FacetRepository
	Backend  *Backend
}

// Close closes the repositories and then the backend.
func (r *Repositories) Close() error {
	r.Concepts.Close()
	r.Groups.Close()
	r.Facets.Close()
	return r.Backend.Close()
}

// OpenRepositories opens a backend at path (in memory when inMemory is set)
// and creates the concept, group and facet repositories on it.
func OpenRepositories(path string, inMemory bool) (*Repositories, error) {
	backend, err := OpenBackend(path, inMemory)
	if err != nil {
		return nil, err
	}

	conceptRepo, err := NewConceptRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	groupRepo, err := NewGroupRepository(backend)
	if err != nil {
		conceptRepo.Close()
		backend.Close()
		return nil, err
	}

	facetRepo, err := NewFacetRepository(backend)
	if err != nil {
		groupRepo.Close()
		conceptRepo.Close()
		backend.Close()
		return nil, err
	}

	return &Repositories{
		Concepts: conceptRepo,
		Groups:   groupRepo,
		Facets:   facetRepo,
		Backend:  backend,
	}, nil
}

// NewMemoryRepositories creates in-memory repositories for testing.
// Caller must Close the result when done.
func NewMemoryRepositories() (*Repositories, error) {
	return OpenRepositories("", true)
}
