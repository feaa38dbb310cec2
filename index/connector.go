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


package index

import "context"

// Connector applies tagging payloads to the documents of a search index.
type Connector interface {
	// UpdateByQuery merges every value of payload into each document that
	// matches q and does not already carry all of them. It returns the
	// number of documents modified. An empty match set yields 0 and no error.
	UpdateByQuery(ctx context.Context, q Query, payload *Payload) (int, error)
}
