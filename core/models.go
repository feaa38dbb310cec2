package core

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// DefaultFacet is the index field used when neither a concept, tag nor group
// names a facet of its own.
const DefaultFacet = "tag_ss"

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// QueryType selects how a label or query is turned into a search query.
// The zero value behaves like QueryTypePhrase.
type QueryType string

const (
	QueryTypePhrase QueryType = "PHRASE"
	QueryTypeOr     QueryType = "OR"
	QueryTypeAnd    QueryType = "AND"
)

// Facet identifies a target field in the search index, e.g. "tag_ss".
type Facet struct {
	Id    ID
	Field string
	Label string
}

// Alternate is an alternative label of a concept with an optional query override.
type Alternate struct {
	Label     string
	Query     string
	QueryType QueryType
}

// Hidden is a hidden (usually misspelled) label of a concept.
type Hidden struct {
	Label     string
	Query     string
	QueryType QueryType
}

// ConceptTag adds an extra facet value to documents tagged for a concept.
// A zero FacetId means the default facet.
type ConceptTag struct {
	Label   string
	FacetId ID
}

// Concept is a thesaurus entry that can be tagged onto documents.
// Alternates, Hidden labels and Tags are owned by the concept and stored with it.
type Concept struct {
	Id         ID
	PrefLabel  string
	Query      string
	QueryType  QueryType
	FacetId    ID
	Tags       []ConceptTag
	GroupIds   []ID
	Alternates []Alternate
	Hidden     []Hidden
	Broader    []ID
	Narrower   []ID
	Related    []ID
	InsertedAt time.Time
	UpdatedAt  time.Time
}

// Name returns the preferred label, or the query when the concept has no label.
func (c *Concept) Name() string {
	if c.PrefLabel != "" {
		return c.PrefLabel
	}
	return c.Query
}

// Labels returns the preferred label followed by all alternate and hidden labels.
// Empty labels are skipped.
func (c *Concept) Labels() []string {
	labels := make([]string, 0, 1+len(c.Alternates)+len(c.Hidden))
	if c.PrefLabel != "" {
		labels = append(labels, c.PrefLabel)
	}
	for _, alt := range c.Alternates {
		if alt.Label != "" {
			labels = append(labels, alt.Label)
		}
	}
	for _, hidden := range c.Hidden {
		if hidden.Label != "" {
			labels = append(labels, hidden.Label)
		}
	}
	return labels
}

// GroupTag adds a facet value to every document tagged with a member of the group.
type GroupTag struct {
	Label   string
	FacetId ID
}

// Group is a node in the group tree. ParentId is a weak reference; 0 marks a root.
type Group struct {
	Id         ID
	PrefLabel  string
	FacetId    ID
	ParentId   ID
	Tags       []GroupTag
	InsertedAt time.Time
	UpdatedAt  time.Time
}

// NormalizeLabel folds a label for index lookups.
func NormalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}
