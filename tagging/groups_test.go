package tagging

import (
	"context"
	"testing"

	"github.com/poiesic/thesaurus/core"
	"github.com/poiesic/thesaurus/index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	locationFacet core.ID = 100
	regionFacet   core.ID = 101
)

var testFacets = fakeFacets{
	locationFacet: {Id: locationFacet, Field: "location_ss"},
	regionFacet:   {Id: regionFacet, Field: "region_ss"},
}

func threeLevelGroups() fakeGroups {
	return fakeGroups{
		1: {Id: 1, PrefLabel: "Europe", FacetId: regionFacet, Tags: []core.GroupTag{{Label: "continent"}}},
		2: {Id: 2, PrefLabel: "Germany", ParentId: 1, Tags: []core.GroupTag{{Label: "country", FacetId: locationFacet}}},
		3: {Id: 3, PrefLabel: "Berlin-Brandenburg", ParentId: 2, FacetId: locationFacet},
	}
}

func TestResolveGroupTags_ThreeLevels(t *testing.T) {
	groups := threeLevelGroups()
	payload := index.NewPayload()

	err := ResolveGroupTags(context.Background(), groups, testFacets, groups[3], core.DefaultFacet, payload)
	require.NoError(t, err)

	location, ok := payload.Get("location_ss")
	require.True(t, ok)
	assert.Equal(t, []string{"Berlin-Brandenburg", "country"}, location.Values())

	region, ok := payload.Get("region_ss")
	require.True(t, ok)
	assert.Equal(t, []string{"Europe"}, region.Values())

	tags, ok := payload.Get(core.DefaultFacet)
	require.True(t, ok)
	assert.Equal(t, []string{"continent"}, tags.Values())

	assert.Equal(t, []string{"location_ss", "region_ss", core.DefaultFacet}, payload.Facets())
}

func TestResolveGroupTags_GroupWithoutFacetAddsNoLabel(t *testing.T) {
	groups := fakeGroups{1: {Id: 1, PrefLabel: "Plain"}}
	payload := index.NewPayload()

	require.NoError(t, ResolveGroupTags(context.Background(), groups, nil, groups[1], "", payload))
	assert.Zero(t, payload.Len())
}

func TestResolveGroupTags_CycleTerminates(t *testing.T) {
	groups := fakeGroups{
		1: {Id: 1, PrefLabel: "A", ParentId: 2, Tags: []core.GroupTag{{Label: "a"}}},
		2: {Id: 2, PrefLabel: "B", ParentId: 1, Tags: []core.GroupTag{{Label: "b"}}},
	}
	payload := index.NewPayload()

	err := ResolveGroupTags(context.Background(), groups, nil, groups[1], core.DefaultFacet, payload)
	require.NoError(t, err)

	v, _ := payload.Get(core.DefaultFacet)
	assert.Equal(t, []string{"a", "b"}, v.Values())
}

func TestResolveGroupTags_StrictCycle(t *testing.T) {
	groups := fakeGroups{
		1: {Id: 1, PrefLabel: "A", ParentId: 1},
	}
	w := &groupWalker{
		groups: groups,
		fields: newFacetFields(nil, "", testLogger()),
		strict: true,
		logger: testLogger(),
	}

	err := w.resolve(context.Background(), groups[1], index.NewPayload())
	assert.ErrorIs(t, err, ErrGroupCycle)
}

func TestResolveGroupTags_MissingParent(t *testing.T) {
	groups := fakeGroups{
		2: {Id: 2, PrefLabel: "Orphan", ParentId: 99, Tags: []core.GroupTag{{Label: "orphan"}}},
	}
	payload := index.NewPayload()

	require.NoError(t, ResolveGroupTags(context.Background(), groups, nil, groups[2], core.DefaultFacet, payload))
	v, _ := payload.Get(core.DefaultFacet)
	assert.Equal(t, []string{"orphan"}, v.Values())
}

func TestFacetFields_UnknownFacetFallsBack(t *testing.T) {
	fields := newFacetFields(testFacets, "tag_ss", testLogger())

	field, err := fields.field(context.Background(), 4242)
	require.NoError(t, err)
	assert.Equal(t, "tag_ss", field)

	field, err = fields.field(context.Background(), locationFacet)
	require.NoError(t, err)
	assert.Equal(t, "location_ss", field)
}
