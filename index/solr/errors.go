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


package solr

import "errors"

var (
	// ErrSolr indicates Solr answered with an error status or an error body.
	ErrSolr = errors.New("solr error")

	// ErrMissingURL indicates the client was created without a base URL.
	ErrMissingURL = errors.New("solr base URL is required")

	// ErrMissingCore indicates the client was created without a core name.
	ErrMissingCore = errors.New("solr core is required")

	// ErrInvalidPageSize indicates a page size below 1.
	ErrInvalidPageSize = errors.New("page size must be positive")

	// ErrInvalidMaxAttempts indicates maxAttempts is not positive.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")
)
