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


// Package index describes the search index the thesaurus tags documents in.
//
// The package holds the types shared between the tagging pipeline and index
// implementations:
//
//   - Payload: facet field -> value(s) to merge into matching documents
//   - Query: the query text plus the parser and default operator to run it with
//   - Connector: "update every matching document that is not yet tagged"
//
// # Implementations
//
//   - index/solr: Apache Solr over HTTP
//   - index/mock: scripted test double
//
// # Not-Yet-Tagged Semantics
//
// A Connector only touches documents that do not already carry every value
// in the payload, and reports how many documents it changed. Running the same
// update twice against an unchanged index therefore reports 0 the second time.
package index
