package execution

import (
	"insecticide/internal/domain"
	"insecticide/internal/report"
	"insecticide/internal/suite"
)

// Executor runs suites and returns their aggregated result
type Executor interface {
	Run(suites []suite.Suite) *report.RunResult
}

// Progress receives every outcome as soon as it is recorded
type Progress interface {
	Advance(outcome domain.Outcome)
	Finish()
}
