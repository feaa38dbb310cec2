package importer

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/poiesic/thesaurus/core"
	"github.com/poiesic/thesaurus/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testThesaurus = `
facets:
  - field: location_ss
    label: Locations
groups:
  - label: Germany
    parent: Europe
    tags:
      - label: Germany
        facet: country_ss
  - label: Europe
    facet: region_ss
concepts:
  - label: Berlin
    facet: location_ss
    groups: [Germany]
    broader: [Germany (country)]
    alternates:
      - label: Berlin, Germany
        query_type: phrase
    hidden:
      - label: Berln
  - label: Germany (country)
    query: germany OR deutschland
    query_type: OR
    facet: location_ss
    narrower: [Berlin]
  - query: "brandenburg*"
`

func newTestImporter(t *testing.T) (*Importer, *badger.Repositories) {
	t.Helper()
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })

	im, err := New(repos.Concepts, repos.Groups, repos.Facets)
	require.NoError(t, err)
	return im, repos
}

func readTestFile(t *testing.T) *File {
	t.Helper()
	f, err := Read(strings.NewReader(testThesaurus))
	require.NoError(t, err)
	return f
}

func TestNew_RequiresRepositories(t *testing.T) {
	_, err := New(nil, nil, nil)
	assert.ErrorIs(t, err, ErrRepositoryRequired)
}

func TestRead(t *testing.T) {
	f := readTestFile(t)
	require.Len(t, f.Facets, 1)
	require.Len(t, f.Groups, 2)
	require.Len(t, f.Concepts, 3)
	assert.Equal(t, "Europe", f.Groups[0].Parent)
	assert.Equal(t, []string{"Germany"}, f.Concepts[0].Groups)
	assert.Equal(t, "brandenburg*", f.Concepts[2].Query)
}

func TestRead_Empty(t *testing.T) {
	f, err := Read(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, f.Concepts)
}

func TestRead_UnknownField(t *testing.T) {
	_, err := Read(strings.NewReader("concepts:\n  - lable: Berlin\n"))
	assert.ErrorIs(t, err, ErrInvalidFile)
}

func TestImport(t *testing.T) {
	im, repos := newTestImporter(t)
	ctx := context.Background()

	result, err := im.Import(ctx, readTestFile(t))
	require.NoError(t, err)
	assert.Equal(t, 3, result.Facets) // location_ss declared, region_ss and country_ss created
	assert.Equal(t, 2, result.Groups)
	assert.Equal(t, 3, result.Concepts)
	assert.Zero(t, result.Replaced)

	europe, err := repos.Groups.FindGroupByLabel(ctx, "Europe")
	require.NoError(t, err)
	germany, err := repos.Groups.FindGroupByLabel(ctx, "Germany")
	require.NoError(t, err)
	assert.Equal(t, europe.Id, germany.ParentId)
	assert.Zero(t, europe.ParentId)
	assert.Equal(t, core.IDFromContent("region_ss"), europe.FacetId)
	require.Len(t, germany.Tags, 1)
	assert.Equal(t, core.IDFromContent("country_ss"), germany.Tags[0].FacetId)

	facet, err := repos.Facets.GetFacet(ctx, core.IDFromContent("location_ss"))
	require.NoError(t, err)
	assert.Equal(t, "Locations", facet.Label)

	berlin, err := repos.Concepts.FindConceptByLabel(ctx, "Berlin")
	require.NoError(t, err)
	country, err := repos.Concepts.FindConceptByLabel(ctx, "Germany (country)")
	require.NoError(t, err)

	assert.Equal(t, []core.ID{germany.Id}, berlin.GroupIds)
	assert.Equal(t, []core.ID{country.Id}, berlin.Broader)
	assert.Equal(t, []core.ID{berlin.Id}, country.Narrower)
	assert.Equal(t, core.QueryTypeOr, country.QueryType)
	assert.Equal(t, []core.Alternate{{Label: "Berlin, Germany", QueryType: core.QueryTypePhrase}}, berlin.Alternates)
	assert.Equal(t, []core.Hidden{{Label: "Berln"}}, berlin.Hidden)

	all, err := repos.Concepts.GetAllConcepts(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestImport_Reimport(t *testing.T) {
	im, repos := newTestImporter(t)
	ctx := context.Background()

	_, err := im.Import(ctx, readTestFile(t))
	require.NoError(t, err)
	berlin, err := repos.Concepts.FindConceptByLabel(ctx, "Berlin")
	require.NoError(t, err)

	result, err := im.Import(ctx, readTestFile(t))
	require.NoError(t, err)
	// two groups and the two labelled concepts
	assert.Equal(t, 4, result.Replaced)

	again, err := repos.Concepts.FindConceptByLabel(ctx, "Berlin")
	require.NoError(t, err)
	assert.Equal(t, berlin.Id, again.Id)

	groups, err := repos.Groups.GetAllGroups(ctx)
	require.NoError(t, err)
	assert.Len(t, groups, 2)
}

func TestImport_UnknownGroup(t *testing.T) {
	im, _ := newTestImporter(t)

	f := &File{Concepts: []ConceptEntry{{Label: "Paris", Groups: []string{"France"}}}}
	_, err := im.Import(context.Background(), f)
	assert.ErrorIs(t, err, ErrUnknownGroup)
}

func TestImport_UnknownParent(t *testing.T) {
	im, _ := newTestImporter(t)

	f := &File{Groups: []GroupEntry{{Label: "France", Parent: "Europe"}}}
	_, err := im.Import(context.Background(), f)
	assert.ErrorIs(t, err, ErrUnknownGroup)
}

func TestImport_UnknownRelated(t *testing.T) {
	im, _ := newTestImporter(t)

	f := &File{Concepts: []ConceptEntry{{Label: "Paris", Related: []string{"Lyon"}}}}
	_, err := im.Import(context.Background(), f)
	assert.ErrorIs(t, err, ErrUnknownConcept)
}

func TestImport_InvalidQueryType(t *testing.T) {
	im, _ := newTestImporter(t)

	f := &File{Concepts: []ConceptEntry{{Label: "Paris", QueryType: "fuzzy"}}}
	_, err := im.Import(context.Background(), f)
	assert.ErrorIs(t, err, core.ErrInvalidQueryType)
}

func TestImportFile(t *testing.T) {
	im, repos := newTestImporter(t)

	path := filepath.Join(t.TempDir(), "thesaurus.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testThesaurus), 0644))

	_, err := im.ImportFile(context.Background(), path)
	require.NoError(t, err)

	_, err = repos.Concepts.FindConceptByLabel(context.Background(), "Berlin")
	assert.NoError(t, err)
}

func TestFileWrite(t *testing.T) {
	f := readTestFile(t)

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	back, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, f, back)
}
