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


// Package storage provides the persistence layer for the thesaurus.
//
// Repository interfaces decouple the tagging pipeline and the importer from
// the storage implementation. BadgerDB is the only backend today
// (see storage/badger).
//
// # Constructor Return Type Pattern
//
// Public constructors in backend packages return the concrete repository
// type, which always satisfies the interface declared here. Callers should
// hold the interface:
//
//	var concepts storage.ConceptRepository
//	concepts, err = badger.NewConceptRepository(backend)
//
// # Architecture
//
//   - ConceptRepository: concepts with their owned alternates, hidden labels and tags
//   - GroupRepository: the group tree and group tags
//   - FacetRepository: index fields that concepts, tags and groups point at
//
// Owned children (aliases, concept tags, group tags) are stored inside the
// parent record, so deleting the parent deletes them. References between
// records (group membership, group parents, facets, broader/narrower/related)
// are plain IDs and are not cascaded.
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
//
// # Context Support
//
// All repository methods accept context.Context. Pass context.Background()
// for operations without specific timeout requirements.
package storage
