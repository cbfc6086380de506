package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"insecticide/internal/cli"
	"insecticide/internal/report"
	"insecticide/internal/ui"
)

// ReportCommand handles the report command
type ReportCommand struct {
	env *cli.Environment
}

// NewReportCommand creates a new ReportCommand
func NewReportCommand(env *cli.Environment) *ReportCommand {
	return &ReportCommand{env: env}
}

// Execute runs the command
func (rc *ReportCommand) Execute(cmd *cobra.Command, args []string) error {
	run, err := lastRun(cmd.Context(), rc.env)
	if err != nil {
		return err
	}

	result := report.FromRecords(run.Records)
	ui.NewFormatter(cmd.OutOrStdout()).PrintSummary(fmt.Sprintf("Run %s", run.ID), result)
	return nil
}
