package tagging

import (
	"errors"
	"fmt"
	"strings"

	"github.com/poiesic/thesaurus/core"
)

// ConceptResult is the outcome of tagging one concept in a batch.
// Err is set when the concept failed; Stats then holds no contribution.
type ConceptResult struct {
	Concept *core.Concept
	Stats   Stats
	Err     error
}

// OK reports whether the concept was tagged without error.
func (r ConceptResult) OK() bool {
	return r.Err == nil
}

// Log returns the result's log lines, or the error line for a failure.
func (r ConceptResult) Log() []string {
	if r.Err != nil {
		return []string{fmt.Sprintf("Error while searching or tagging the concept \"%s\"", r.Concept.Name())}
	}
	return r.Stats.Log
}

// Report aggregates the results of a batch run. Totals only count
// concepts that succeeded.
type Report struct {
	Results []ConceptResult
	Queries int
	Tagged  int
	Failed  int
}

// NewReport builds a report from results in the given order.
func NewReport(results []ConceptResult) *Report {
	r := &Report{Results: results}
	for _, res := range results {
		if !res.OK() {
			r.Failed++
			continue
		}
		r.Queries += res.Stats.Queries
		r.Tagged += res.Stats.Tagged
	}
	return r
}

// Log returns the log lines of all results in order.
func (r *Report) Log() []string {
	var lines []string
	for _, res := range r.Results {
		lines = append(lines, res.Log()...)
	}
	return lines
}

// Err joins the errors of all failed concepts, or returns nil.
func (r *Report) Err() error {
	var errs []error
	for _, res := range r.Results {
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}
	return errors.Join(errs...)
}

// Text renders the plain-text batch report.
func (r *Report) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Search queries: %d\n(checking if new documents with concept or alias but without tags of the concept or its groups)\n\n", r.Queries)
	fmt.Fprintf(&b, "Update queries (documents tagged): %d\n\n", r.Tagged)
	b.WriteString(strings.Join(r.Log(), "\n"))
	return b.String()
}

// Summarize renders the status messages shown after a single concept was
// created or edited and tagged.
func Summarize(label string, stats Stats) []string {
	if stats.Tagged == 0 {
		return []string{
			fmt.Sprintf("No yet untagged documents matching the concept \"%s\" or one of its aliases (checked %d search queries)", label, stats.Queries),
		}
	}

	var head string
	if stats.Queries > 1 {
		head = fmt.Sprintf("Tagged %d yet untagged documents matching the concept \"%s\" or one of its aliases while %d search queries", stats.Tagged, label, stats.Queries)
	} else {
		head = fmt.Sprintf("Tagged %d yet untagged documents matching the concept \"%s\"", stats.Tagged, label)
	}
	return []string{head, "Log: " + strings.Join(stats.Log, ";\n")}
}
