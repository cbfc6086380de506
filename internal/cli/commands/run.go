package commands

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"insecticide/internal/cli"
	"insecticide/internal/execution"
	"insecticide/internal/metrics"
	"insecticide/internal/report"
	"insecticide/internal/storage"
	"insecticide/internal/ui"
)

// RunCommand handles the run command
type RunCommand struct {
	env    *cli.Environment
	flags  *cli.Flags
	viewer ui.Viewer
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(env *cli.Environment, flags *cli.Flags) *RunCommand {
	return &RunCommand{
		env:    env,
		flags:  flags,
		viewer: ui.NewFailureViewer(),
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := rc.env.Config
	logger := rc.env.Logger
	out := cmd.OutOrStdout()
	formatter := ui.NewFormatter(out)

	// Discover suites
	suites, errs, err := discoverSuites(rc.env)
	if err != nil {
		return err
	}
	formatter.PrintDiscoveryErrors(errs)
	if len(suites) == 0 {
		color.New(color.FgYellow).Fprintln(out, "No test suites to execute")
	}

	runner := execution.NewRunner(logger)
	scheduler := execution.NewSequentialScheduler(labelFilter(cmd, rc.flags))
	engine := execution.NewEngine(runner, scheduler, logger)
	if !cfg.Flags.NoProgress && len(suites) > 0 {
		engine.SetProgress(ui.NewProgressBar(execution.CountCases(suites), cmd.ErrOrStderr()))
	}

	// Execute suites
	var executor execution.Executor = engine
	result := executor.Run(suites)
	logResults(logger, result)
	formatter.PrintSummary("Test Results", result)

	// Save results
	runID := uuid.NewString()
	logger.Info("Storing test results", zap.String("run_id", runID), zap.String("result_log", cfg.ResultLog))
	if err := rc.store(ctx, runID, result); err != nil {
		return err
	}

	if cfg.MetricsFile != "" {
		collector := metrics.NewCollector()
		collector.Observe(result)
		if err := collector.Write(cfg.MetricsFile); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
		logger.Info("Wrote run metrics", zap.String("path", cfg.MetricsFile))
	}
	logger.Info("Test run done", zap.String("run_id", runID))

	if !result.HasFailures() {
		return nil
	}
	if cfg.Flags.OpenFailures {
		run := &storage.Run{ID: runID, Records: result.Records(runID)}
		if err := rc.viewer.View(run); err != nil {
			return err
		}
	}
	return ErrTestsFailed
}

func (rc *RunCommand) store(ctx context.Context, runID string, result *report.RunResult) error {
	resultLog, err := cli.OpenResultLog(ctx, rc.env.Config)
	if err != nil {
		return err
	}
	defer resultLog.Close()

	return resultLog.Append(ctx, result.Records(runID))
}

// logResults writes every outcome to the log, grouped by suite
func logResults(logger *zap.Logger, result *report.RunResult) {
	for _, id := range result.SuiteIDs() {
		logger.Info("Results of tests from suite", zap.String("suite", id))
		outcomes, _ := result.Suite(id)
		for _, o := range outcomes {
			logger.Info(o.String())
		}
	}

	if line, err := ui.PassLine(result); err == nil {
		logger.Info(line)
	} else {
		logger.Warn("No test cases were run")
	}
}
