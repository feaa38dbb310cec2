package storage

import (
	"testing"
	"time"

	"github.com/poiesic/thesaurus/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("tag_ss")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestMarshalUnmarshalConcept(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	concept := &core.Concept{
		Id:         7,
		PrefLabel:  "Berlin",
		Query:      "berlin OR berlín",
		QueryType:  core.QueryTypeOr,
		FacetId:    core.IDFromContent("location_ss"),
		Tags:       []core.ConceptTag{{Label: "capital"}, {Label: "Germany", FacetId: 3}},
		GroupIds:   []core.ID{1, 2},
		Alternates: []core.Alternate{{Label: "Berlin, Germany", Query: "\"berlin germany\"", QueryType: core.QueryTypeAnd}},
		Hidden:     []core.Hidden{{Label: "Berln"}},
		Broader:    []core.ID{9},
		Related:    []core.ID{11, 12},
		InsertedAt: now,
		UpdatedAt:  now.Add(time.Second),
	}

	decoded, err := UnmarshalConcept(MarshalConcept(concept))
	require.NoError(t, err)
	assert.Equal(t, concept, decoded)
}

func TestUnmarshalConcept_Truncated(t *testing.T) {
	data := MarshalConcept(&core.Concept{
		PrefLabel:  "Berlin",
		Alternates: []core.Alternate{{Label: "a"}, {Label: "b"}},
	})

	_, err := UnmarshalConcept(data[:len(data)/2])
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestMarshalUnmarshalGroup(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	group := &core.Group{
		Id:         4,
		PrefLabel:  "Europe",
		FacetId:    5,
		ParentId:   1,
		Tags:       []core.GroupTag{{Label: "continent"}},
		InsertedAt: now,
		UpdatedAt:  now,
	}

	decoded, err := UnmarshalGroup(MarshalGroup(group))
	require.NoError(t, err)
	assert.Equal(t, group, decoded)
}

func TestMarshalUnmarshalFacet(t *testing.T) {
	facet := &core.Facet{Id: core.IDFromContent("person_ss"), Field: "person_ss", Label: "Persons"}

	decoded, err := UnmarshalFacet(MarshalFacet(facet))
	require.NoError(t, err)
	assert.Equal(t, facet, decoded)
}
