package tagging

import (
	"errors"
	"testing"

	"github.com/poiesic/thesaurus/core"
	"github.com/stretchr/testify/assert"
)

func TestReportText(t *testing.T) {
	report := NewReport([]ConceptResult{
		{Concept: &core.Concept{PrefLabel: "A"}, Stats: Stats{Queries: 3, Tagged: 5, Log: []string{"line a"}}},
		{Concept: &core.Concept{PrefLabel: "B"}, Stats: Stats{Queries: 2, Tagged: 9}, Err: errors.New("boom")},
		{Concept: &core.Concept{PrefLabel: "C"}, Stats: Stats{Queries: 1}},
	})

	want := "Search queries: 4\n" +
		"(checking if new documents with concept or alias but without tags of the concept or its groups)\n\n" +
		"Update queries (documents tagged): 5\n\n" +
		"line a\n" +
		`Error while searching or tagging the concept "B"`
	assert.Equal(t, want, report.Text())
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name  string
		stats Stats
		want  []string
	}{
		{
			name:  "several queries",
			stats: Stats{Queries: 4, Tagged: 7, Log: []string{"one", "two"}},
			want: []string{
				`Tagged 7 yet untagged documents matching the concept "Berlin" or one of its aliases while 4 search queries`,
				"Log: one;\ntwo",
			},
		},
		{
			name:  "single query",
			stats: Stats{Queries: 1, Tagged: 2, Log: []string{"one"}},
			want: []string{
				`Tagged 2 yet untagged documents matching the concept "Berlin"`,
				"Log: one",
			},
		},
		{
			name:  "nothing tagged",
			stats: Stats{Queries: 3},
			want: []string{
				`No yet untagged documents matching the concept "Berlin" or one of its aliases (checked 3 search queries)`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summarize("Berlin", tt.stats))
		})
	}
}

func TestStatsAdd(t *testing.T) {
	s := Stats{Queries: 1, Tagged: 2, Log: []string{"a"}}
	s.Add(Stats{Queries: 3, Tagged: 4, Log: []string{"b"}})
	assert.Equal(t, Stats{Queries: 4, Tagged: 6, Log: []string{"a", "b"}}, s)
}
