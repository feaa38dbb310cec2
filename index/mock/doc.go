// Package mock provides a test double for index.Connector.
//
// MockConnector records every UpdateByQuery call and answers from a script
// of results, a custom function, or a default of 0 documents.
//
// # Usage in Tests
//
//	conn := mock.NewMockConnector().
//	    WithResults(mock.Result{Count: 5}, mock.Result{Count: 0})
//	stats, err := tagger.TagConcept(ctx, concept)
//
//	// Inspect what was sent
//	calls := conn.Calls()
//
// # Simulating an Index
//
// NewMemoryIndex returns a connector backed by an in-memory document set.
// It honours the not-yet-tagged semantics of index.Connector, so repeated
// tagging runs report 0 the second time.
package mock
