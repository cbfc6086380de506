package execution

import (
	"insecticide/internal/discovery"
	"insecticide/internal/suite"
)

// Job is a suite paired with the filter decision taken for it
type Job struct {
	Suite    suite.Suite
	Decision discovery.Decision
}

// Scheduler orders suites for execution and decides which of them run
type Scheduler interface {
	Schedule(suites []suite.Suite) []Job
}

// SequentialScheduler keeps discovery order and applies a label filter
type SequentialScheduler struct {
	filter *discovery.LabelFilter
}

// NewSequentialScheduler creates a new SequentialScheduler. A nil filter runs every suite.
func NewSequentialScheduler(filter *discovery.LabelFilter) *SequentialScheduler {
	return &SequentialScheduler{filter: filter}
}

// Schedule returns one job per suite in the given order
func (s *SequentialScheduler) Schedule(suites []suite.Suite) []Job {
	jobs := make([]Job, 0, len(suites))
	for _, st := range suites {
		jobs = append(jobs, Job{Suite: st, Decision: s.filter.Decide(st)})
	}
	return jobs
}

// CountCases returns the number of outcomes a run over suites will produce
func CountCases(suites []suite.Suite) int {
	total := 0
	for _, s := range suites {
		total += len(s.Cases())
	}
	return total
}
