package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"insecticide/internal/cli"
	"insecticide/internal/storage"
	"insecticide/internal/ui"
)

// FailuresCommand handles the failures command
type FailuresCommand struct {
	env    *cli.Environment
	viewer ui.Viewer
}

// NewFailuresCommand creates a new FailuresCommand
func NewFailuresCommand(env *cli.Environment) *FailuresCommand {
	return &FailuresCommand{
		env:    env,
		viewer: ui.NewFailureViewer(),
	}
}

// Execute runs the command
func (fc *FailuresCommand) Execute(cmd *cobra.Command, args []string) error {
	run, err := lastRun(cmd.Context(), fc.env)
	if err != nil {
		return err
	}
	return fc.viewer.View(run)
}

// lastRun loads the most recent run from the configured result log
func lastRun(ctx context.Context, env *cli.Environment) (*storage.Run, error) {
	resultLog, err := cli.OpenResultLog(ctx, env.Config)
	if err != nil {
		return nil, err
	}
	defer resultLog.Close()

	reader, ok := resultLog.(storage.RunReader)
	if !ok {
		return nil, fmt.Errorf("result log %q does not keep run history", env.Config.ResultLog)
	}
	return reader.LastRun(ctx)
}
