package tagging

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/poiesic/thesaurus/core"
	"github.com/poiesic/thesaurus/index"
	"github.com/poiesic/thesaurus/index/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func berlin() *core.Concept {
	return &core.Concept{
		Id:        1,
		PrefLabel: "Berlin",
		Tags:      []core.ConceptTag{{Label: "capital"}},
		Alternates: []core.Alternate{
			{Label: "Berlin, Germany"},
			{Label: "Spree-Athen"},
		},
		Hidden: []core.Hidden{{Label: "Berln"}},
	}
}

func newTestTagger(t *testing.T, conn index.Connector, opts ...Option) *Tagger {
	t.Helper()
	opts = append([]Option{WithLogger(testLogger())}, opts...)
	tagger, err := NewTagger(conn, opts...)
	require.NoError(t, err)
	return tagger
}

func TestTagConcept_CountsAndLog(t *testing.T) {
	conn := mock.NewMockConnector().WithResults(
		mock.Result{Count: 5},
		mock.Result{Count: 0},
		mock.Result{Count: 2},
		mock.Result{Count: 0},
	)
	tagger := newTestTagger(t, conn)

	stats, err := tagger.TagConcept(context.Background(), berlin())
	require.NoError(t, err)

	assert.Equal(t, 4, stats.Queries)
	assert.Equal(t, 7, stats.Tagged)
	assert.Equal(t, []string{
		`Tagged 5 yet untagged entries with tags of the concept "Berlin"`,
		`Tagged 2 yet untagged entries containing alias "Spree-Athen" with tags of the concept "Berlin"`,
	}, stats.Log)
}

func TestTagConcept_QueriesInOrderWithSamePayload(t *testing.T) {
	conn := mock.NewMockConnector()
	tagger := newTestTagger(t, conn)

	_, err := tagger.TagConcept(context.Background(), berlin())
	require.NoError(t, err)

	calls := conn.Calls()
	require.Len(t, calls, 4)
	assert.Equal(t, "Berlin", calls[0].Query.Text)
	assert.Equal(t, `"Berlin, Germany"`, calls[1].Query.Text)
	assert.Equal(t, "Spree-Athen", calls[2].Query.Text)
	assert.Equal(t, "Berln", calls[3].Query.Text)

	for _, call := range calls {
		v, ok := call.Payload.Get(core.DefaultFacet)
		require.True(t, ok)
		assert.Equal(t, []string{"Berlin", "capital"}, v.Values())
	}
}

func TestTagConcept_HiddenLabelLogUsesHiddenText(t *testing.T) {
	conn := mock.NewMockConnector().WithResults(
		mock.Result{Count: 0},
		mock.Result{Count: 3},
	)
	tagger := newTestTagger(t, conn)

	concept := &core.Concept{PrefLabel: "Munich", Hidden: []core.Hidden{{Label: "Munchen"}}}
	stats, err := tagger.TagConcept(context.Background(), concept)
	require.NoError(t, err)
	assert.Equal(t, []string{
		`Tagged 3 yet untagged entries containing hidden label "Munchen" with tags of the concept "Munich"`,
	}, stats.Log)
}

func TestTagConcept_Verbose(t *testing.T) {
	tagger := newTestTagger(t, mock.NewMockConnector(), WithVerbose(true))

	stats, err := tagger.TagConcept(context.Background(), berlin())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Checking concept: Berlin",
		"Checking alias: Berlin, Germany",
		"Checking alias: Spree-Athen",
		"Checking hidden label: Berln",
	}, stats.Log)
}

func TestTagConcept_ErrorPropagates(t *testing.T) {
	conn := mock.NewMockConnector().WithResults(
		mock.Result{Count: 1},
		mock.Result{Err: errIndexDown},
	)
	tagger := newTestTagger(t, conn)

	_, err := tagger.TagConcept(context.Background(), berlin())
	require.Error(t, err)
	assert.ErrorIs(t, err, errIndexDown)
	assert.Equal(t, 2, conn.CallCount())
}

func TestTagConcept_QueryOnlyConcept(t *testing.T) {
	conn := mock.NewMockConnector().WithResults(mock.Result{Count: 4})
	tagger := newTestTagger(t, conn)

	concept := &core.Concept{Query: "berlin OR berlín", QueryType: core.QueryTypeOr}
	stats, err := tagger.TagConcept(context.Background(), concept)
	require.NoError(t, err)

	call := conn.Calls()[0]
	assert.Equal(t, "berlin OR berlín", call.Query.Text)
	assert.Equal(t, index.OperatorOr, call.Query.Params.Operator)
	v, _ := call.Payload.Get(core.DefaultFacet)
	assert.Equal(t, []string{"berlin OR berlín"}, v.Values())
	assert.Equal(t, []string{`Tagged 4 yet untagged entries with tags of the concept "berlin OR berlín"`}, stats.Log)
}

func TestBuildPayload_FacetsTagsAndGroups(t *testing.T) {
	tagger := newTestTagger(t, mock.NewMockConnector(),
		WithGroups(threeLevelGroups()),
		WithFacets(testFacets),
	)

	concept := &core.Concept{
		PrefLabel: "Berlin",
		FacetId:   locationFacet,
		Tags:      []core.ConceptTag{{Label: "capital"}, {Label: "city", FacetId: locationFacet}},
		GroupIds:  []core.ID{3, 404},
	}

	payload, err := tagger.BuildPayload(context.Background(), concept)
	require.NoError(t, err)

	location, _ := payload.Get("location_ss")
	assert.Equal(t, []string{"Berlin", "city", "Berlin-Brandenburg", "country"}, location.Values())
	tags, _ := payload.Get(core.DefaultFacet)
	assert.Equal(t, []string{"capital", "continent"}, tags.Values())
	region, _ := payload.Get("region_ss")
	assert.Equal(t, []string{"Europe"}, region.Values())
}

func TestBuildPayload_GroupsWithoutSource(t *testing.T) {
	tagger := newTestTagger(t, mock.NewMockConnector())

	_, err := tagger.BuildPayload(context.Background(), &core.Concept{PrefLabel: "x", GroupIds: []core.ID{1}})
	assert.ErrorIs(t, err, ErrGroupSourceRequired)
}

func TestNewTagger_RequiresConnector(t *testing.T) {
	_, err := NewTagger(nil)
	assert.ErrorIs(t, err, ErrConnectorRequired)
}

func TestTagConcept_Idempotent(t *testing.T) {
	idx := mock.NewMemoryIndex(
		mock.Document{ID: "1", Text: "A weekend in Berlin"},
		mock.Document{ID: "2", Text: "Berln is a typo"},
	)
	tagger := newTestTagger(t, idx)
	ctx := context.Background()

	first, err := tagger.TagConcept(ctx, berlin())
	require.NoError(t, err)
	assert.Equal(t, 2, first.Tagged)

	second, err := tagger.TagConcept(ctx, berlin())
	require.NoError(t, err)
	assert.Zero(t, second.Tagged)
	assert.Equal(t, first.Queries, second.Queries)
}

func TestTagConcept_Nil(t *testing.T) {
	tagger := newTestTagger(t, mock.NewMockConnector())
	_, err := tagger.TagConcept(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNilConcept)
}
