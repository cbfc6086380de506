// Package report aggregates per-suite outcomes into a run result.
package report

import (
	"errors"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"go.uber.org/zap"

	"insecticide/internal/domain"
)

// ErrNoOutcomes is returned when a pass rate is requested for an empty run
var ErrNoOutcomes = errors.New("pass rate is undefined: no test outcomes")

// Aggregator collects outcomes per suite id in discovery order
type Aggregator struct {
	suites     *orderedmap.OrderedMap[string, []domain.Outcome]
	duplicates []string
	logger     *zap.Logger
}

// NewAggregator creates an empty Aggregator
func NewAggregator(logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{
		suites: orderedmap.New[string, []domain.Outcome](),
		logger: logger,
	}
}

// Add records the outcomes of a suite. A repeated suite id replaces the earlier
// outcomes in place and is reported as a duplicate.
func (a *Aggregator) Add(suiteID string, outcomes []domain.Outcome) {
	stored := append([]domain.Outcome(nil), outcomes...)
	if previous, present := a.suites.Set(suiteID, stored); present {
		a.duplicates = append(a.duplicates, suiteID)
		a.logger.Warn("Duplicate suite id, earlier results are overwritten",
			zap.String("suite", suiteID),
			zap.Int("dropped_outcomes", len(previous)),
		)
	}
}

// Build freezes the collected outcomes into a RunResult
func (a *Aggregator) Build() *RunResult {
	suites := orderedmap.New[string, []domain.Outcome]()
	var all []domain.Outcome
	for pair := a.suites.Oldest(); pair != nil; pair = pair.Next() {
		suites.Set(pair.Key, pair.Value)
		all = append(all, pair.Value...)
	}

	return &RunResult{
		suites:     suites,
		outcomes:   all,
		duplicates: append([]string(nil), a.duplicates...),
		summary:    domain.Summarize(all),
	}
}

// RunResult is the read-only aggregate of one engine invocation
type RunResult struct {
	suites     *orderedmap.OrderedMap[string, []domain.Outcome]
	outcomes   []domain.Outcome
	duplicates []string
	summary    domain.Summary
}

// SuiteIDs returns the suite ids in discovery order
func (r *RunResult) SuiteIDs() []string {
	ids := make([]string, 0, r.suites.Len())
	for pair := r.suites.Oldest(); pair != nil; pair = pair.Next() {
		ids = append(ids, pair.Key)
	}
	return ids
}

// Suite returns a copy of the outcomes recorded for a suite id
func (r *RunResult) Suite(id string) ([]domain.Outcome, bool) {
	outcomes, ok := r.suites.Get(id)
	if !ok {
		return nil, false
	}
	return append([]domain.Outcome(nil), outcomes...), true
}

// Outcomes returns every outcome, flattened in suite order
func (r *RunResult) Outcomes() []domain.Outcome {
	return append([]domain.Outcome(nil), r.outcomes...)
}

// Duplicates returns the suite ids that were added more than once
func (r *RunResult) Duplicates() []string {
	return append([]string(nil), r.duplicates...)
}

// Summary returns the outcome counts
func (r *RunResult) Summary() domain.Summary {
	return r.summary
}

// PassRate returns passed/total, or ErrNoOutcomes when nothing ran
func (r *RunResult) PassRate() (float64, error) {
	if r.summary.Total == 0 {
		return 0, ErrNoOutcomes
	}
	return float64(r.summary.Passed) / float64(r.summary.Total), nil
}

// HasFailures reports whether any test case failed
func (r *RunResult) HasFailures() bool {
	return r.summary.Failed > 0
}

// Records converts the result into result log records tagged with runID
func (r *RunResult) Records(runID string) []domain.Record {
	records := make([]domain.Record, 0, len(r.outcomes))
	for pair := r.suites.Oldest(); pair != nil; pair = pair.Next() {
		for _, o := range pair.Value {
			records = append(records, domain.NewRecord(runID, pair.Key, o))
		}
	}
	return records
}

// FromRecords rebuilds a RunResult from stored records, grouped by suite id in first-seen order
func FromRecords(records []domain.Record) *RunResult {
	grouped := orderedmap.New[string, []domain.Outcome]()
	for _, r := range records {
		outcomes, _ := grouped.Get(r.Suite)
		grouped.Set(r.Suite, append(outcomes, r.Outcome()))
	}

	agg := NewAggregator(nil)
	for pair := grouped.Oldest(); pair != nil; pair = pair.Next() {
		agg.Add(pair.Key, pair.Value)
	}
	return agg.Build()
}
