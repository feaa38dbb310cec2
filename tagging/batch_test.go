package tagging

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/poiesic/thesaurus/core"
	"github.com/poiesic/thesaurus/index"
	"github.com/poiesic/thesaurus/index/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingOn returns a connector that fails for queries on label and
// tags 1 document for every other query.
func failingOn(label string) *mock.MockConnector {
	return mock.NewMockConnector().WithUpdateByQueryFunc(func(ctx context.Context, q index.Query, p *index.Payload) (int, error) {
		if q.Text == label {
			return 0, errIndexDown
		}
		return 1, nil
	})
}

func abc() []*core.Concept {
	return []*core.Concept{
		{Id: 1, PrefLabel: "A"},
		{Id: 2, PrefLabel: "B"},
		{Id: 3, PrefLabel: "C"},
	}
}

func TestTagAll_IsolatesFailures(t *testing.T) {
	for _, workers := range []int{1, 3} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			tagger := newTestTagger(t, failingOn("B"))
			batch, err := NewBatchTagger(tagger, fakeConcepts{concepts: abc()}, WithWorkers(workers))
			require.NoError(t, err)

			report, err := batch.TagAll(context.Background())
			require.NoError(t, err)

			require.Len(t, report.Results, 3)
			assert.True(t, report.Results[0].OK())
			assert.False(t, report.Results[1].OK())
			assert.True(t, report.Results[2].OK())

			assert.Equal(t, 2, report.Queries)
			assert.Equal(t, 2, report.Tagged)
			assert.Equal(t, 1, report.Failed)

			assert.Equal(t, []string{
				`Tagged 1 yet untagged entries with tags of the concept "A"`,
				`Error while searching or tagging the concept "B"`,
				`Tagged 1 yet untagged entries with tags of the concept "C"`,
			}, report.Log())

			assert.ErrorIs(t, report.Err(), errIndexDown)
		})
	}
}

func TestTagAll_ListError(t *testing.T) {
	listErr := errors.New("db gone")
	tagger := newTestTagger(t, mock.NewMockConnector())
	batch, err := NewBatchTagger(tagger, fakeConcepts{err: listErr})
	require.NoError(t, err)

	_, err = batch.TagAll(context.Background())
	assert.ErrorIs(t, err, listErr)
}

func TestTagAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tagger := newTestTagger(t, mock.NewMockConnector())
	batch, err := NewBatchTagger(tagger, fakeConcepts{concepts: abc()})
	require.NoError(t, err)

	_, err = batch.TagAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTagAll_Empty(t *testing.T) {
	tagger := newTestTagger(t, mock.NewMockConnector())
	batch, err := NewBatchTagger(tagger, fakeConcepts{})
	require.NoError(t, err)

	report, err := batch.TagAll(context.Background())
	require.NoError(t, err)
	assert.Zero(t, report.Queries)
	assert.NoError(t, report.Err())
}

func TestTagAll_Progress(t *testing.T) {
	var out bytes.Buffer
	tagger := newTestTagger(t, mock.NewMockConnector())
	batch, err := NewBatchTagger(tagger, fakeConcepts{concepts: abc()}, WithProgress(&out, 1))
	require.NoError(t, err)

	_, err = batch.TagAll(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Tagging: 3/3 concepts")
}

func TestNewBatchTagger_Validation(t *testing.T) {
	_, err := NewBatchTagger(nil, fakeConcepts{})
	assert.ErrorIs(t, err, ErrTaggerRequired)

	tagger := newTestTagger(t, mock.NewMockConnector())
	_, err = NewBatchTagger(tagger, nil)
	assert.ErrorIs(t, err, ErrConceptSourceRequired)
}
