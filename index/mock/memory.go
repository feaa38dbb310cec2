package mock

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/poiesic/thesaurus/index"
)

// Document is a document held by a MemoryIndex.
type Document struct {
	ID     string
	Text   string
	Fields map[string][]string
}

// MemoryIndex is an in-memory index.Connector. A document matches a query
// when its text contains the query text, compared case-insensitively with
// quotes and wildcards removed.
type MemoryIndex struct {
	mu   sync.Mutex
	docs map[string]*Document
}

var _ index.Connector = (*MemoryIndex)(nil)

// NewMemoryIndex creates an index holding docs.
func NewMemoryIndex(docs ...Document) *MemoryIndex {
	m := &MemoryIndex{docs: make(map[string]*Document, len(docs))}
	for _, d := range docs {
		doc := d
		if doc.Fields == nil {
			doc.Fields = make(map[string][]string)
		}
		m.docs[doc.ID] = &doc
	}
	return m
}

// UpdateByQuery adds the payload values to every matching document that
// does not already carry all of them.
func (m *MemoryIndex) UpdateByQuery(ctx context.Context, q index.Query, payload *index.Payload) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	needle := normalizeQuery(q.Text)

	m.mu.Lock()
	defer m.mu.Unlock()

	updated := 0
	for _, doc := range m.docs {
		if !strings.Contains(strings.ToLower(doc.Text), needle) {
			continue
		}
		if carriesAll(doc, payload) {
			continue
		}
		for _, facet := range payload.Facets() {
			v, _ := payload.Get(facet)
			for _, value := range v.Values() {
				if !slices.Contains(doc.Fields[facet], value) {
					doc.Fields[facet] = append(doc.Fields[facet], value)
				}
			}
		}
		updated++
	}
	return updated, nil
}

// Fields returns a copy of the values stored in facet for the document id.
func (m *MemoryIndex) Fields(id, facet string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[id]
	if !ok {
		return nil
	}
	return slices.Clone(doc.Fields[facet])
}

// IDs returns the document IDs in sorted order.
func (m *MemoryIndex) IDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.docs))
	for id := range m.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func carriesAll(doc *Document, payload *index.Payload) bool {
	for _, facet := range payload.Facets() {
		v, _ := payload.Get(facet)
		for _, value := range v.Values() {
			if !slices.Contains(doc.Fields[facet], value) {
				return false
			}
		}
	}
	return true
}

func normalizeQuery(text string) string {
	text = strings.NewReplacer(`"`, "", "*", "", "?", "").Replace(text)
	return strings.ToLower(strings.TrimSpace(text))
}
