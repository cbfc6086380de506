package cli

import (
	"insecticide/internal/config"
	"insecticide/internal/discovery"
	"insecticide/internal/domain"
)

// Flags holds command-line flags
type Flags struct {
	ConfigFile    string
	TestDir       string
	MetricsFile   string
	IncludeLabels string
	ExcludeLabels string
	NoProgress    bool
	OpenFailures  bool
	ShowCases     bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		ConfigFile:   f.ConfigFile,
		TestDir:      f.TestDir,
		MetricsFile:  f.MetricsFile,
		NoProgress:   f.NoProgress,
		OpenFailures: f.OpenFailures,
	}
}

// LabelFilter builds the suite filter. A label flag that was not given on the
// command line does not filter, and neither does one given with no labels.
func (f *Flags) LabelFilter(includeGiven, excludeGiven bool) *discovery.LabelFilter {
	var include, exclude domain.LabelSet
	if includeGiven {
		include = discovery.ParseLabels(f.IncludeLabels)
	}
	if excludeGiven {
		exclude = discovery.ParseLabels(f.ExcludeLabels)
	}
	if len(include) == 0 && len(exclude) == 0 {
		return nil
	}
	return discovery.NewLabelFilter(include, exclude)
}
