package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"insecticide/internal/cli"
	"insecticide/internal/discovery"
	"insecticide/internal/suite"
)

// discoverSuites scans the test directory and instantiates every suite the manifests name.
// Broken manifests and suites are logged and returned next to the suites that loaded.
func discoverSuites(env *cli.Environment) ([]suite.Suite, []error, error) {
	cfg := env.Config
	if err := cfg.CheckTestDir(); err != nil {
		return nil, nil, err
	}

	sources, err := discovery.NewScanner(cfg.PathsToIgnore).Scan(cfg.TestDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan %s: %w", cfg.TestDir, err)
	}
	env.Logger.Debug("Found suite manifests", zap.Strings("sources", sources))

	d := discovery.NewDiscoverer(env.Registry, discovery.NewParser(), env.Logger)
	suites, errs := d.Discover(sources)
	for _, err := range errs {
		env.Logger.Warn("Unable to load test suites", zap.Error(err))
	}
	return suites, errs, nil
}

// labelFilter builds the filter from the label flags that were set on cmd
func labelFilter(cmd *cobra.Command, flags *cli.Flags) *discovery.LabelFilter {
	return flags.LabelFilter(cmd.Flags().Changed("include-labels"), cmd.Flags().Changed("exclude-labels"))
}
