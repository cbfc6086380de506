package report

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"insecticide/internal/domain"
)

func outcome(name string, status domain.Status) domain.Outcome {
	o := domain.Outcome{Name: name, StartTime: time.Unix(1700000000, 0), Status: status}
	if status != domain.StatusPass {
		o.Message = "detail"
	}
	return o
}

func TestAggregator_Summary(t *testing.T) {
	agg := NewAggregator(zap.NewNop())
	agg.Add("suite_001", []domain.Outcome{outcome("test_pass", domain.StatusPass)})
	agg.Add("suite_002", []domain.Outcome{outcome("test_fail", domain.StatusFail)})

	result := agg.Build()
	summary := result.Summary()
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.Passed)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 0, summary.Skipped)

	rate, err := result.PassRate()
	require.NoError(t, err)
	assert.Equal(t, 0.5, rate)
	assert.True(t, result.HasFailures())
}

func TestAggregator_SkippedCounts(t *testing.T) {
	agg := NewAggregator(nil)
	agg.Add("s", []domain.Outcome{
		outcome("a", domain.StatusSkip),
		outcome("b", domain.StatusSkip),
		outcome("c", domain.StatusPass),
	})

	result := agg.Build()
	assert.Equal(t, domain.Summary{Total: 3, Passed: 1, Skipped: 2}, result.Summary())
	rate, err := result.PassRate()
	require.NoError(t, err)
	assert.InDelta(t, 1.0/3.0, rate, 1e-12)
	assert.False(t, result.HasFailures())
}

func TestRunResult_PassRateEmpty(t *testing.T) {
	result := NewAggregator(nil).Build()
	_, err := result.PassRate()
	assert.True(t, errors.Is(err, ErrNoOutcomes))

	agg := NewAggregator(nil)
	agg.Add("empty", nil)
	_, err = agg.Build().PassRate()
	assert.True(t, errors.Is(err, ErrNoOutcomes))
}

func TestAggregator_KeepsOrder(t *testing.T) {
	agg := NewAggregator(nil)
	agg.Add("zeta", []domain.Outcome{outcome("z1", domain.StatusPass), outcome("z2", domain.StatusFail)})
	agg.Add("alpha", []domain.Outcome{outcome("a1", domain.StatusPass)})

	result := agg.Build()
	assert.Equal(t, []string{"zeta", "alpha"}, result.SuiteIDs())

	var names []string
	for _, o := range result.Outcomes() {
		names = append(names, o.Name)
	}
	assert.Equal(t, []string{"z1", "z2", "a1"}, names)
}

func TestAggregator_DuplicateIDs(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	agg := NewAggregator(zap.New(core))

	agg.Add("dup", []domain.Outcome{outcome("first", domain.StatusFail)})
	agg.Add("other", []domain.Outcome{outcome("other", domain.StatusPass)})
	agg.Add("dup", []domain.Outcome{outcome("second", domain.StatusPass)})

	result := agg.Build()

	t.Run("last write wins in the original position", func(t *testing.T) {
		assert.Equal(t, []string{"dup", "other"}, result.SuiteIDs())
		outcomes, ok := result.Suite("dup")
		require.True(t, ok)
		require.Len(t, outcomes, 1)
		assert.Equal(t, "second", outcomes[0].Name)
	})

	t.Run("summary counts only surviving outcomes", func(t *testing.T) {
		assert.Equal(t, domain.Summary{Total: 2, Passed: 2}, result.Summary())
	})

	t.Run("duplicate is flagged", func(t *testing.T) {
		assert.Equal(t, []string{"dup"}, result.Duplicates())
		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, "dup", entry.ContextMap()["suite"])
	})
}

func TestRunResult_IsReadOnly(t *testing.T) {
	input := []domain.Outcome{outcome("a", domain.StatusPass)}
	agg := NewAggregator(nil)
	agg.Add("s", input)
	result := agg.Build()

	input[0].Name = "mutated"
	got, _ := result.Suite("s")
	assert.Equal(t, "a", got[0].Name)

	got[0].Name = "mutated"
	again, _ := result.Suite("s")
	assert.Equal(t, "a", again[0].Name)

	agg.Add("late", []domain.Outcome{outcome("late", domain.StatusPass)})
	assert.Equal(t, []string{"s"}, result.SuiteIDs())
}

func TestRunResult_Records(t *testing.T) {
	agg := NewAggregator(nil)
	agg.Add("s1", []domain.Outcome{outcome("ok", domain.StatusPass), outcome("bad", domain.StatusFail)})

	records := agg.Build().Records("run-1")
	require.Len(t, records, 2)
	assert.Equal(t, "run-1", records[0].RunID)
	assert.Equal(t, "s1", records[0].Suite)
	assert.Nil(t, records[0].Message)
	require.NotNil(t, records[1].Message)
	assert.Equal(t, "detail", *records[1].Message)
	assert.Equal(t, 1, records[1].StatusCode)
}

func TestFromRecords(t *testing.T) {
	agg := NewAggregator(zap.NewNop())
	agg.Add("suite_b", []domain.Outcome{outcome("test_1", domain.StatusPass), outcome("test_2", domain.StatusFail)})
	agg.Add("suite_a", []domain.Outcome{outcome("test_3", domain.StatusSkip)})
	original := agg.Build()

	rebuilt := FromRecords(original.Records("run-1"))

	assert.Equal(t, []string{"suite_b", "suite_a"}, rebuilt.SuiteIDs())
	assert.Equal(t, original.Summary(), rebuilt.Summary())
	assert.Empty(t, rebuilt.Duplicates())

	outcomes, ok := rebuilt.Suite("suite_b")
	require.True(t, ok)
	require.Len(t, outcomes, 2)
	assert.Equal(t, "test_2", outcomes[1].Name)
	assert.Equal(t, "detail", outcomes[1].Message)
}
