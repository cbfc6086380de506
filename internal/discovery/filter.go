package discovery

import (
	"strings"

	"insecticide/internal/domain"
	"insecticide/internal/suite"
)

// LabelDelimiter separates labels in a filter flag value
const LabelDelimiter = ";"

const (
	ReasonNotIncluded = "does not match inclusion labels"
	ReasonExcluded    = "matches exclusion label"
)

// Decision is the outcome of filtering a single suite
type Decision struct {
	Run    bool
	Reason string // empty when Run is true
}

// LabelFilter decides which suites run using include and exclude label sets.
// A nil set means the filter of that kind was not given.
type LabelFilter struct {
	Include domain.LabelSet
	Exclude domain.LabelSet
}

// NewLabelFilter creates a LabelFilter
func NewLabelFilter(include, exclude domain.LabelSet) *LabelFilter {
	return &LabelFilter{Include: include, Exclude: exclude}
}

// Decide evaluates inclusion first, then exclusion
func (f *LabelFilter) Decide(s suite.Suite) Decision {
	if f == nil {
		return Decision{Run: true}
	}
	labels := s.Labels()
	if len(f.Include) > 0 && !f.Include.Intersects(labels) {
		return Decision{Reason: ReasonNotIncluded}
	}
	if len(f.Exclude) > 0 && f.Exclude.Intersects(labels) {
		return Decision{Reason: ReasonExcluded}
	}
	return Decision{Run: true}
}

// ParseLabels splits a delimiter-separated flag value into a LabelSet.
// Blank entries are dropped.
func ParseLabels(value string) domain.LabelSet {
	set := domain.NewLabelSet()
	for _, label := range strings.Split(value, LabelDelimiter) {
		label = strings.TrimSpace(label)
		if label != "" {
			set[label] = struct{}{}
		}
	}
	return set
}
