package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"insecticide/internal/cli"
	"insecticide/internal/config"
	"insecticide/internal/exitcodes"
)

// ErrTestsFailed is returned by run when any test case failed
var ErrTestsFailed = errors.New("one or more test cases failed")

// Commands holds all CLI commands
type Commands struct {
	Run      *RunCommand
	List     *ListCommand
	Failures *FailuresCommand
	Report   *ReportCommand
	Config   *ConfigCommand
}

// NewCommands creates all commands sharing env and flags
func NewCommands(env *cli.Environment, flags *cli.Flags) *Commands {
	return &Commands{
		Run:      NewRunCommand(env, flags),
		List:     NewListCommand(env, flags),
		Failures: NewFailuresCommand(env),
		Report:   NewReportCommand(env),
		Config:   NewConfigCommand(env),
	}
}

// NewRootCommand builds the insecticide command tree
func NewRootCommand(version string, env *cli.Environment) *cobra.Command {
	var flags cli.Flags

	rootCmd := &cobra.Command{
		Use:           "insecticide",
		Short:         "Label-filtered test suite runner",
		Long:          `Discovers test suites from manifests, runs their cases sequentially with label filtering, and stores every outcome in a result log.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return env.Init(cmd.Context(), &flags)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&flags.ConfigFile, "config", "c", config.DefaultConfigFile, "Path to the JSON configuration file")

	NewCommands(env, &flags).Register(rootCmd, &flags)
	return rootCmd
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags) {
	// Run command
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run test suites",
		Long:  "Discover test suites, run the ones selected by the label filters and store the outcomes",
		Args:  cobra.NoArgs,
		RunE:  c.Run.Execute,
	}
	addDiscoveryFlags(runCmd, flags)
	runCmd.Flags().StringVar(&flags.MetricsFile, "metrics-file", "", "Write run metrics to this Prometheus text file")
	runCmd.Flags().BoolVar(&flags.NoProgress, "no-progress", false, "Do not render the progress bar")
	runCmd.Flags().BoolVar(&flags.OpenFailures, "open-failures", false, "Open the failures viewer when the run finishes with failures")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered test suites",
		Long:  "Discover test suites and show which ones the label filters would run, without executing them",
		Args:  cobra.NoArgs,
		RunE:  c.List.Execute,
	}
	addDiscoveryFlags(listCmd, flags)
	listCmd.Flags().BoolVar(&flags.ShowCases, "cases", false, "Show the test cases of every suite")
	rootCmd.AddCommand(listCmd)

	// Failures command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "failures",
		Short: "View test failures interactively",
		Long:  "Display failed test cases from the last stored run in an interactive viewer",
		Args:  cobra.NoArgs,
		RunE:  c.Failures.Execute,
	})

	// Report command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "report",
		Short: "Print the summary of the last run",
		Args:  cobra.NoArgs,
		RunE:  c.Report.Execute,
	})

	// Config commands
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Read and write the configuration store",
	}
	configCmd.AddCommand(
		&cobra.Command{
			Use:   "get <key>",
			Short: "Print a configuration value",
			Args:  cobra.ExactArgs(1),
			RunE:  c.Config.Get,
		},
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Store a configuration value",
			Args:  cobra.ExactArgs(2),
			RunE:  c.Config.Set,
		},
		&cobra.Command{
			Use:   "list",
			Short: "Print every stored configuration value",
			Args:  cobra.NoArgs,
			RunE:  c.Config.List,
		},
	)
	rootCmd.AddCommand(configCmd)
}

func addDiscoveryFlags(cmd *cobra.Command, flags *cli.Flags) {
	cmd.Flags().StringVarP(&flags.IncludeLabels, "include-labels", "i", "", "Run only suites with at least one of these labels (separated by ';')")
	cmd.Flags().StringVarP(&flags.ExcludeLabels, "exclude-labels", "e", "", "Skip suites with any of these labels (separated by ';')")
	cmd.Flags().StringVarP(&flags.TestDir, "test-dir", "t", "", "Directory scanned for suite manifests")
}

// ExitCode maps a command error to the process exit status
func ExitCode(err error) int {
	if err == nil {
		return exitcodes.Success
	}
	if errors.Is(err, ErrTestsFailed) {
		return exitcodes.TestFailure
	}
	return exitcodes.RuntimeErr
}
