package execution

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insecticide/internal/discovery"
	"insecticide/internal/domain"
	"insecticide/internal/suite"
)

type recordingProgress struct {
	seen     []string
	finished bool
}

func (p *recordingProgress) Advance(o domain.Outcome) { p.seen = append(p.seen, o.Name) }
func (p *recordingProgress) Finish()                  { p.finished = true }

func newEngine(filter *discovery.LabelFilter) *Engine {
	return NewEngine(NewRunner(nil), NewSequentialScheduler(filter), nil)
}

func firstSuite(t *testing.T) *recordingSuite {
	return newRecordingSuite(t, "test_test_suite_001", []string{"test", "suite", "first"},
		suite.Case{Name: "test_pass", Run: pass})
}

func secondSuite(t *testing.T) *recordingSuite {
	return newRecordingSuite(t, "test_test_suite_002", []string{"test", "suite", "second"},
		suite.Case{Name: "test_fail", Run: func() error { return suite.Fail("always fails") }})
}

func TestEngine_PassingSuite(t *testing.T) {
	result := newEngine(nil).Run([]suite.Suite{firstSuite(t)})

	outcomes, ok := result.Suite("test_test_suite_001")
	require.True(t, ok)
	require.Len(t, outcomes, 1)
	assert.Equal(t, domain.StatusPass, outcomes[0].Status)
	assert.Empty(t, outcomes[0].Message)
}

func TestEngine_FailingSuite(t *testing.T) {
	result := newEngine(nil).Run([]suite.Suite{secondSuite(t)})

	outcomes, ok := result.Suite("test_test_suite_002")
	require.True(t, ok)
	require.Len(t, outcomes, 1)
	assert.Equal(t, domain.StatusFail, outcomes[0].Status)
	assert.Contains(t, outcomes[0].Message, "always fails")
}

func TestEngine_IncludeFilter(t *testing.T) {
	first, second := firstSuite(t), secondSuite(t)
	filter := discovery.NewLabelFilter(domain.NewLabelSet("second"), nil)

	result := newEngine(filter).Run([]suite.Suite{first, second})

	skipped, _ := result.Suite(first.ID())
	require.Len(t, skipped, 1)
	assert.Equal(t, domain.StatusSkip, skipped[0].Status)
	assert.Equal(t, "Skipped", skipped[0].Message)
	assert.Empty(t, first.calls, "skipped suite must not be touched")

	ran, _ := result.Suite(second.ID())
	require.Len(t, ran, 1)
	assert.Equal(t, domain.StatusFail, ran[0].Status)
	assert.Equal(t, []string{StageSetup, "test_fail", StageTeardown}, second.calls)
}

func TestEngine_ExcludeFilter(t *testing.T) {
	third := newRecordingSuite(t, "test_test_suite_003", []string{"third"},
		suite.Case{Name: "test_random_1", Run: pass},
		suite.Case{Name: "test_random_2", Run: pass},
	)
	filter := discovery.NewLabelFilter(nil, domain.NewLabelSet("third"))

	result := newEngine(filter).Run([]suite.Suite{third})

	outcomes, _ := result.Suite(third.ID())
	require.Len(t, outcomes, 2)
	for _, o := range outcomes {
		assert.Equal(t, domain.StatusSkip, o.Status)
		assert.Zero(t, o.Duration)
	}
	assert.Empty(t, third.calls)
}

func TestEngine_SetupFailure(t *testing.T) {
	s := newRecordingSuite(t, "setup_fails", []string{}, suite.Case{Name: "test_any", Run: pass})
	s.setupErr = errors.New("RuntimeError: boom")

	result := newEngine(nil).Run([]suite.Suite{s})

	outcomes, _ := result.Suite("setup_fails")
	require.Len(t, outcomes, 1)
	assert.Equal(t, domain.StatusFail, outcomes[0].Status)
	assert.Contains(t, outcomes[0].Message, "boom")
	assert.NotContains(t, s.calls, StageTeardown)
	assert.NotContains(t, s.calls, "test_any")
}

func TestEngine_Summary(t *testing.T) {
	result := newEngine(nil).Run([]suite.Suite{firstSuite(t), secondSuite(t)})

	summary := result.Summary()
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.Passed)
	rate, err := result.PassRate()
	require.NoError(t, err)
	assert.Equal(t, 0.5, rate)
}

func TestEngine_OneOutcomePerCase(t *testing.T) {
	build := func() []suite.Suite {
		multi := newRecordingSuite(t, "multi", []string{"x"},
			suite.Case{Name: "test_a", Run: pass},
			suite.Case{Name: "test_b", Run: func() error { return errors.New("no") }},
			suite.Case{Name: "test_c", Run: pass},
		)
		broken := newRecordingSuite(t, "broken", []string{"y"},
			suite.Case{Name: "test_d", Run: pass},
			suite.Case{Name: "test_e", Run: pass},
		)
		broken.setupErr = errors.New("setup down")
		empty := newRecordingSuite(t, "empty", []string{"x"})
		return []suite.Suite{multi, broken, empty, secondSuite(t)}
	}

	filters := map[string]*discovery.LabelFilter{
		"none":    nil,
		"include": discovery.NewLabelFilter(domain.NewLabelSet("x"), nil),
		"exclude": discovery.NewLabelFilter(nil, domain.NewLabelSet("y")),
	}

	for name, filter := range filters {
		t.Run(name, func(t *testing.T) {
			suites := build()
			result := newEngine(filter).Run(suites)

			assert.Equal(t, CountCases(suites), result.Summary().Total)
			for _, s := range suites {
				outcomes, ok := result.Suite(s.ID())
				require.True(t, ok, "suite %s missing", s.ID())
				names := []string{}
				for _, o := range outcomes {
					names = append(names, o.Name)
					assert.True(t, o.Status.Valid())
					assert.GreaterOrEqual(t, o.Duration.Nanoseconds(), int64(0))
				}
				if diff := cmp.Diff(suite.CaseNames(s), names); diff != "" {
					t.Errorf("outcome names for %s (-want +got):\n%s", s.ID(), diff)
				}
			}
		})
	}
}

func TestEngine_Deterministic(t *testing.T) {
	run := func() []domain.Status {
		suites := []suite.Suite{firstSuite(t), secondSuite(t), firstSuite(t)}
		filter := discovery.NewLabelFilter(nil, domain.NewLabelSet("nothing"))
		var statuses []domain.Status
		for _, o := range newEngine(filter).Run(suites).Outcomes() {
			statuses = append(statuses, o.Status)
		}
		return statuses
	}

	first := run()
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, run())
	}
}

func TestEngine_DuplicateSuiteIDs(t *testing.T) {
	a := firstSuite(t)
	b := newRecordingSuite(t, a.ID(), []string{"first"}, suite.Case{Name: "test_other", Run: pass})

	result := newEngine(nil).Run([]suite.Suite{a, b})

	assert.Equal(t, []string{a.ID()}, result.Duplicates())
	outcomes, _ := result.Suite(a.ID())
	require.Len(t, outcomes, 1)
	assert.Equal(t, "test_other", outcomes[0].Name)
	assert.Equal(t, []string{StageSetup, "test_pass", StageTeardown}, a.calls, "both suites still run")
}

func TestEngine_Progress(t *testing.T) {
	progress := &recordingProgress{}
	engine := newEngine(discovery.NewLabelFilter(domain.NewLabelSet("second"), nil))
	engine.SetProgress(progress)

	engine.Run([]suite.Suite{firstSuite(t), secondSuite(t)})

	assert.Equal(t, []string{"test_pass", "test_fail"}, progress.seen)
	assert.True(t, progress.finished)
}

func TestEngine_StateSharedAcrossCases(t *testing.T) {
	counter := 0
	var seen []int
	s := newRecordingSuite(t, "stateful", []string{},
		suite.Case{Name: "test_one", Run: func() error { counter++; seen = append(seen, counter); return nil }},
		suite.Case{Name: "test_two", Run: func() error { counter++; seen = append(seen, counter); return nil }},
	)

	newEngine(nil).Run([]suite.Suite{s})
	assert.Equal(t, []int{1, 2}, seen)
	assert.Equal(t, []string{
		StageSetup, "test_one", StageTeardown,
		StageSetup, "test_two", StageTeardown,
	}, s.calls)
}
