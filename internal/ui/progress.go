package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"insecticide/internal/domain"
)

// ProgressBar renders run progress and implements execution.Progress
type ProgressBar struct {
	bar     *progressbar.ProgressBar
	passed  int
	failed  int
	skipped int
}

// NewProgressBar creates a new progress bar for count test cases
func NewProgressBar(count int, out io.Writer) *ProgressBar {
	bar := progressbar.NewOptions(count,
		progressbar.OptionSetDescription(describe(0, 0, 0)),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(out),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(out, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)

	return &ProgressBar{bar: bar}
}

// Advance counts one outcome and redraws the bar
func (p *ProgressBar) Advance(o domain.Outcome) {
	switch o.Status {
	case domain.StatusPass:
		p.passed++
	case domain.StatusFail:
		p.failed++
	case domain.StatusSkip:
		p.skipped++
	}
	_ = p.bar.Set(p.Done())
	p.bar.Describe(describe(p.passed, p.failed, p.skipped))
}

// Done returns the number of outcomes seen so far
func (p *ProgressBar) Done() int {
	return p.passed + p.failed + p.skipped
}

// Finish completes the progress bar
func (p *ProgressBar) Finish() {
	_ = p.bar.Finish()
}

func describe(passed, failed, skipped int) string {
	return color.CyanString("Running tests: ") +
		color.GreenString("[passed: %d", passed) +
		" | " +
		color.RedString("failed: %d", failed) +
		" | " +
		color.YellowString("skipped: %d]", skipped)
}
