package ui

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"insecticide/internal/discovery"
	"insecticide/internal/domain"
	"insecticide/internal/report"
	"insecticide/internal/suite"
)

// Formatter formats and displays output
type Formatter struct {
	out io.Writer
}

// NewFormatter creates a new Formatter writing to out
func NewFormatter(out io.Writer) *Formatter {
	return &Formatter{out: out}
}

// PassLine renders "passed/total (rate%) tests passed!"
func PassLine(result *report.RunResult) (string, error) {
	rate, err := result.PassRate()
	if err != nil {
		return "", err
	}
	s := result.Summary()
	return fmt.Sprintf("%d/%d (%.1f%%) tests passed!", s.Passed, s.Total, rate*100), nil
}

// PrintSummary prints the per-suite table, the failed test cases and the pass line
func (f *Formatter) PrintSummary(title string, result *report.RunResult) {
	fmt.Fprintln(f.out)
	fmt.Fprint(f.out, FormatSummaryTable(title, result))

	// Print summary line
	fmt.Fprintln(f.out)
	line, err := PassLine(result)
	switch {
	case errors.Is(err, report.ErrNoOutcomes):
		fmt.Fprintln(f.out, color.YellowString("No test cases were run"))
	case result.HasFailures():
		fmt.Fprintln(f.out, color.RedString("✗ %s", line))
		fmt.Fprintln(f.out)
		f.printFailedTree(result)
	default:
		fmt.Fprintln(f.out, color.GreenString("✓ %s", line))
	}
}

// FormatSummaryTable renders one row per suite and a totals footer
func FormatSummaryTable(title string, result *report.RunResult) string {
	var buf bytes.Buffer

	t := table.NewWriter()
	t.SetOutputMirror(&buf)
	t.SetTitle(title)
	t.AppendHeader(table.Row{"SUITE", "TESTS", "PASSED", "FAILED", "SKIPPED", "DURATION", "STATUS"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "SUITE", WidthMax: 80, WidthMaxEnforcer: text.WrapSoft},
		{Name: "TESTS", Align: text.AlignRight},
		{Name: "PASSED", Align: text.AlignRight},
		{Name: "FAILED", Align: text.AlignRight},
		{Name: "SKIPPED", Align: text.AlignRight},
		{Name: "DURATION", Align: text.AlignRight},
	})

	var total float64
	for _, id := range result.SuiteIDs() {
		outcomes, _ := result.Suite(id)
		s := domain.Summarize(outcomes)
		d := totalSeconds(outcomes)
		total += d
		t.AppendRow(table.Row{id, s.Total, s.Passed, s.Failed, s.Skipped, fmt.Sprintf("%.2fs", d), statusOf(s)})
	}

	s := result.Summary()
	t.AppendFooter(table.Row{"TOTAL", s.Total, s.Passed, s.Failed, s.Skipped, fmt.Sprintf("%.2fs", total), statusOf(s)})
	t.SetStyle(table.StyleLight)
	t.Render()
	return buf.String()
}

// statusOf reduces counts to a single status label
func statusOf(s domain.Summary) string {
	switch {
	case s.Failed > 0:
		return strings.ToUpper(domain.StatusFail.String())
	case s.Total > 0 && s.Skipped == s.Total:
		return strings.ToUpper(domain.StatusSkip.String())
	default:
		return strings.ToUpper(domain.StatusPass.String())
	}
}

func totalSeconds(outcomes []domain.Outcome) float64 {
	var sum float64
	for _, o := range outcomes {
		sum += o.DurationSeconds()
	}
	return sum
}

// printFailedTree prints failed test cases grouped under their suite
func (f *Formatter) printFailedTree(result *report.RunResult) {
	for _, id := range result.SuiteIDs() {
		outcomes, _ := result.Suite(id)
		var failed []domain.Outcome
		for _, o := range outcomes {
			if o.Status == domain.StatusFail {
				failed = append(failed, o)
			}
		}
		if len(failed) == 0 {
			continue
		}

		fmt.Fprintln(f.out, color.YellowString("%s", id))
		for _, o := range failed {
			fmt.Fprintf(f.out, "  |_ %s: %s\n", color.RedString("%s", o.Name), o.Message)
		}
	}
}

// ListEntry is a discovered suite with its filter decision
type ListEntry struct {
	Suite    suite.Suite
	Decision discovery.Decision
}

// PrintSuiteList prints discovered suites with their labels and cases
func (f *Formatter) PrintSuiteList(entries []ListEntry, showCases bool) {
	fmt.Fprintln(f.out, color.GreenString("Found %d suite(s):", len(entries)))
	fmt.Fprintln(f.out)

	for i, e := range entries {
		isLastSuite := i == len(entries)-1

		marker := ""
		if !e.Decision.Run {
			marker = " " + color.RedString("[skip: %s]", e.Decision.Reason)
		}
		labels := ""
		if l := e.Suite.Labels(); len(l) > 0 {
			labels = " " + color.MagentaString("(%s)", strings.Join(l, discovery.LabelDelimiter))
		}

		if isLastSuite {
			fmt.Fprintf(f.out, "└── %s%s%s\n", color.CyanString("%s", e.Suite.ID()), labels, marker)
		} else {
			fmt.Fprintf(f.out, "├── %s%s%s\n", color.CyanString("%s", e.Suite.ID()), labels, marker)
		}
		if !showCases {
			continue
		}

		names := suite.CaseNames(e.Suite)
		for j, name := range names {
			isLastCase := j == len(names)-1

			var prefix string
			if isLastSuite {
				if isLastCase {
					prefix = "    └── "
				} else {
					prefix = "    ├── "
				}
			} else {
				if isLastCase {
					prefix = "│   └── "
				} else {
					prefix = "│   ├── "
				}
			}
			fmt.Fprintf(f.out, "%s%s\n", prefix, color.YellowString("%s", name))
		}
	}
}

// PrintDiscoveryErrors prints the errors that prevented sources or suites from loading
func (f *Formatter) PrintDiscoveryErrors(errs []error) {
	if len(errs) == 0 {
		return
	}
	fmt.Fprintln(f.out, color.RedString("%d discovery error(s):", len(errs)))
	for _, err := range errs {
		fmt.Fprintf(f.out, "  |_ %v\n", err)
	}
}
