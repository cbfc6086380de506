package ui

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"insecticide/internal/discovery"
	"insecticide/internal/domain"
	"insecticide/internal/report"
	"insecticide/internal/suite"
)

func init() {
	color.NoColor = true
}

func buildResult(outcomes map[string][]domain.Status, order ...string) *report.RunResult {
	start := time.Unix(1700000000, 0)
	agg := report.NewAggregator(zap.NewNop())
	for _, id := range order {
		var out []domain.Outcome
		for i, st := range outcomes[id] {
			o := domain.Outcome{Name: id + "_case_" + string(rune('a'+i)), StartTime: start, Duration: 500 * time.Millisecond, Status: st}
			if st == domain.StatusFail {
				o.Message = "AssertionError: always fails"
			}
			out = append(out, o)
		}
		agg.Add(id, out)
	}
	return agg.Build()
}

func TestPassLine(t *testing.T) {
	tests := []struct {
		name     string
		statuses []domain.Status
		expected string
	}{
		{"all passed", []domain.Status{domain.StatusPass, domain.StatusPass}, "2/2 (100.0%) tests passed!"},
		{"one of three", []domain.Status{domain.StatusPass, domain.StatusFail, domain.StatusSkip}, "1/3 (33.3%) tests passed!"},
		{"all skipped", []domain.Status{domain.StatusSkip}, "0/1 (0.0%) tests passed!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := buildResult(map[string][]domain.Status{"s": tt.statuses}, "s")
			line, err := PassLine(result)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if line != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, line)
			}
		})
	}

	_, err := PassLine(buildResult(nil))
	if !errors.Is(err, report.ErrNoOutcomes) {
		t.Errorf("expected ErrNoOutcomes, got %v", err)
	}
}

func TestFormatSummaryTable(t *testing.T) {
	result := buildResult(map[string][]domain.Status{
		"example_pass": {domain.StatusPass},
		"example_fail": {domain.StatusFail},
		"example_skip": {domain.StatusSkip, domain.StatusSkip},
	}, "example_pass", "example_fail", "example_skip")

	out := FormatSummaryTable("Test Results", result)

	for _, want := range []string{"Test Results", "example_pass", "example_fail", "example_skip", "TOTAL", "SKIP", "FAIL"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected table to contain %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "example_pass") > strings.Index(out, "example_fail") {
		t.Errorf("expected suites in run order:\n%s", out)
	}
}

func TestPrintSummary(t *testing.T) {
	t.Run("failures are listed", func(t *testing.T) {
		var buf bytes.Buffer
		result := buildResult(map[string][]domain.Status{
			"example_fail": {domain.StatusPass, domain.StatusFail},
		}, "example_fail")

		NewFormatter(&buf).PrintSummary("Test Results", result)

		out := buf.String()
		if !strings.Contains(out, "✗ 1/2 (50.0%) tests passed!") {
			t.Errorf("missing pass line:\n%s", out)
		}
		if !strings.Contains(out, "|_ example_fail_case_b: AssertionError: always fails") {
			t.Errorf("missing failure entry:\n%s", out)
		}
	})

	t.Run("empty run", func(t *testing.T) {
		var buf bytes.Buffer
		NewFormatter(&buf).PrintSummary("Test Results", buildResult(nil))
		if !strings.Contains(buf.String(), "No test cases were run") {
			t.Errorf("missing empty run notice:\n%s", buf.String())
		}
	})
}

func TestPrintSuiteList(t *testing.T) {
	body := func() error { return nil }
	first := suite.MustNew(suite.Definition{ID: "example_pass", Labels: []string{"smoke"}},
		suite.Case{Name: "test_pass", Run: body})
	second := suite.MustNew(suite.Definition{ID: "example_random", Labels: []string{"third"}},
		suite.Case{Name: "test_first", Run: body},
		suite.Case{Name: "test_second", Run: body})

	var buf bytes.Buffer
	NewFormatter(&buf).PrintSuiteList([]ListEntry{
		{Suite: first, Decision: discovery.Decision{Run: true}},
		{Suite: second, Decision: discovery.Decision{Reason: discovery.ReasonExcluded}},
	}, true)

	expected := strings.Join([]string{
		"Found 2 suite(s):",
		"",
		"├── example_pass (smoke)",
		"│   └── test_pass",
		"└── example_random (third) [skip: matches exclusion label]",
		"    ├── test_first",
		"    └── test_second",
		"",
	}, "\n")
	if buf.String() != expected {
		t.Errorf("expected:\n%s\ngot:\n%s", expected, buf.String())
	}
}

func TestPrintDiscoveryErrors(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf)

	f.PrintDiscoveryErrors(nil)
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}

	f.PrintDiscoveryErrors([]error{errors.New("tests/broken_suite.yaml: bad manifest")})
	if !strings.Contains(buf.String(), "|_ tests/broken_suite.yaml: bad manifest") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestProgressBarAdvance(t *testing.T) {
	p := NewProgressBar(3, io.Discard)
	p.Advance(domain.Outcome{Status: domain.StatusPass})
	p.Advance(domain.Outcome{Status: domain.StatusFail})
	p.Advance(domain.Outcome{Status: domain.StatusSkip})
	p.Finish()

	if p.Done() != 3 {
		t.Errorf("expected 3, got %d", p.Done())
	}
	if p.passed != 1 || p.failed != 1 || p.skipped != 1 {
		t.Errorf("unexpected counts: %d/%d/%d", p.passed, p.failed, p.skipped)
	}
}

func TestFormatFailure(t *testing.T) {
	msg := "AssertionError: always fails"
	rec := domain.Record{
		Suite:          "example_fail",
		Name:           "test_fail",
		StartTimestamp: 1700000000,
		DurationS:      0.5,
		StatusCode:     int(domain.StatusFail),
		Message:        &msg,
	}

	stats := formatFailureStats(rec, 1)
	if !strings.Contains(stats, "example_fail") || !strings.Contains(stats, "test_fail") {
		t.Errorf("unexpected stats %q", stats)
	}

	details := formatFailureDetails(rec)
	if !strings.Contains(details, msg) {
		t.Errorf("expected message in details: %q", details)
	}
	if !strings.Contains(details, "0.50 seconds") {
		t.Errorf("expected duration in details: %q", details)
	}

	if got := formatFailureStats(domain.Record{}, 3); !strings.Contains(got, "Unknown suite") || !strings.Contains(got, "Test 3") {
		t.Errorf("unexpected fallback stats %q", got)
	}
}
