package execution

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"insecticide/internal/domain"
	"insecticide/internal/suite"
)

// Stage names of the per-case lifecycle
const (
	StageSetup    = "setup"
	StageTest     = "test"
	StageTeardown = "teardown"
)

// stageResult is Ok when failed is false, Failed(reason) otherwise
type stageResult struct {
	stage  string
	failed bool
	reason string
}

// runStage invokes fn and converts a returned error or a panic into a failed result
func runStage(stage string, fn func() error) (res stageResult) {
	res.stage = stage
	defer func() {
		if r := recover(); r != nil {
			res.failed = true
			res.reason = fmt.Sprintf("panic: %v", r)
		}
	}()

	if fn == nil {
		return stageResult{stage: stage, failed: true, reason: fmt.Sprintf("%s has no body", stage)}
	}
	if err := fn(); err != nil {
		res.failed = true
		res.reason = err.Error()
		if res.reason == "" {
			res.reason = fmt.Sprintf("%T", err)
		}
	}
	return res
}

// Option configures a Runner
type Option func(*Runner)

// WithClock replaces the wall clock used for timestamps
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		r.now = now
	}
}

// Runner executes the lifecycle of single test cases
type Runner struct {
	now    func() time.Time
	logger *zap.Logger
}

// NewRunner creates a new Runner
func NewRunner(logger *zap.Logger, opts ...Option) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Runner{now: time.Now, logger: logger}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunCase runs setup, the case body and teardown, and records one outcome.
//
// A failing setup ends the case immediately without teardown. A failing body
// still runs teardown. A failing teardown is the last stage executed, so its
// message replaces any earlier one.
func (r *Runner) RunCase(s suite.Suite, c suite.Case) domain.Outcome {
	start := r.now()

	res := runStage(StageSetup, s.Setup)
	if !res.failed {
		res = runStage(StageTest, c.Run)
		if teardown := runStage(StageTeardown, s.Teardown); teardown.failed {
			res = teardown
		}
	}

	duration := r.now().Sub(start)
	if duration < 0 {
		duration = 0
	}

	outcome := domain.Outcome{
		Name:      c.Name,
		StartTime: start,
		Duration:  duration,
		Status:    domain.StatusPass,
	}
	if res.failed {
		outcome.Status = domain.StatusFail
		outcome.Message = res.reason
		r.logger.Error("Encountered error in test case",
			zap.String("suite", s.ID()),
			zap.String("case", c.Name),
			zap.String("stage", res.stage),
			zap.String("error", res.reason),
		)
	}
	return outcome
}

// SkipSuite records a skip outcome for every case of s without invoking any of its hooks
func (r *Runner) SkipSuite(s suite.Suite) []domain.Outcome {
	at := r.now()
	cases := s.Cases()
	outcomes := make([]domain.Outcome, 0, len(cases))
	for _, c := range cases {
		outcomes = append(outcomes, domain.NewSkipped(c.Name, at))
	}
	return outcomes
}
