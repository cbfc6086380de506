package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"insecticide/internal/cli"
	"insecticide/internal/execution"
	"insecticide/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	env   *cli.Environment
	flags *cli.Flags
}

// NewListCommand creates a new ListCommand
func NewListCommand(env *cli.Environment, flags *cli.Flags) *ListCommand {
	return &ListCommand{
		env:   env,
		flags: flags,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	formatter := ui.NewFormatter(out)

	suites, errs, err := discoverSuites(lc.env)
	if err != nil {
		return err
	}
	formatter.PrintDiscoveryErrors(errs)

	if len(suites) == 0 {
		color.New(color.FgYellow).Fprintln(out, "No test suites found")
		return nil
	}

	jobs := execution.NewSequentialScheduler(labelFilter(cmd, lc.flags)).Schedule(suites)
	entries := make([]ui.ListEntry, 0, len(jobs))
	for _, job := range jobs {
		entries = append(entries, ui.ListEntry{Suite: job.Suite, Decision: job.Decision})
	}
	formatter.PrintSuiteList(entries, lc.flags.ShowCases)
	return nil
}
