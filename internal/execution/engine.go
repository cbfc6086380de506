package execution

import (
	"go.uber.org/zap"

	"insecticide/internal/domain"
	"insecticide/internal/report"
	"insecticide/internal/suite"
)

// Engine runs suites one at a time in discovery order, and the cases of a
// suite one at a time in declaration order.
type Engine struct {
	runner    *Runner
	scheduler Scheduler
	progress  Progress
	logger    *zap.Logger
}

// NewEngine creates a new Engine
func NewEngine(runner *Runner, scheduler Scheduler, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		runner:    runner,
		scheduler: scheduler,
		logger:    logger,
	}
}

// SetProgress sets the progress reporter for the engine
func (e *Engine) SetProgress(progress Progress) {
	e.progress = progress
}

// Run executes every scheduled suite and aggregates the outcomes.
// Test level errors are recorded as outcomes and never returned.
func (e *Engine) Run(suites []suite.Suite) *report.RunResult {
	agg := report.NewAggregator(e.logger)

	for _, job := range e.scheduler.Schedule(suites) {
		s := job.Suite
		var outcomes []domain.Outcome

		if !job.Decision.Run {
			e.logger.Info("Suite was skipped",
				zap.String("suite", s.ID()),
				zap.String("reason", job.Decision.Reason),
			)
			outcomes = e.runner.SkipSuite(s)
			for _, o := range outcomes {
				e.advance(o)
			}
		} else {
			e.logger.Info("Running the tests from suite", zap.String("suite", s.ID()))
			for _, c := range s.Cases() {
				o := e.runner.RunCase(s, c)
				e.advance(o)
				outcomes = append(outcomes, o)
			}
		}

		agg.Add(s.ID(), outcomes)
	}

	if e.progress != nil {
		e.progress.Finish()
	}
	return agg.Build()
}

func (e *Engine) advance(o domain.Outcome) {
	e.logger.Debug("Recorded outcome", zap.Stringer("outcome", o))
	if e.progress != nil {
		e.progress.Advance(o)
	}
}
