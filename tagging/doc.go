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


// Package tagging propagates thesaurus concepts onto search index documents.
//
// For one concept the Tagger builds a payload of facet values (the concept's
// own label, its direct tags and the tags of its groups and their ancestors),
// then runs one query for the concept and one for every alternate and hidden
// label. Each query adds the payload to every matching document that does
// not carry it yet.
//
// # Architecture
//
//   - BuildQuery: label/query/query type -> index.Query
//   - ResolveGroupTags: walks a group's parent chain into a payload
//   - Tagger: tags the documents of one concept and reports Stats
//   - BatchTagger: tags every concept, isolating per-concept failures
//   - Report / Summarize: plain-text renderings of the results
//
// # Errors
//
// Tagger.TagConcept returns the first index or storage error. BatchTagger
// records such errors per concept and carries on; only failing to list the
// concepts or a cancelled context aborts a batch.
//
// # Usage
//
//	tagger, err := tagging.NewTagger(connector,
//	    tagging.WithGroups(groups),
//	    tagging.WithFacets(facets),
//	)
//	stats, err := tagger.TagConcept(ctx, concept)
//	for _, msg := range tagging.Summarize(concept.Name(), stats) {
//	    fmt.Println(msg)
//	}
package tagging
