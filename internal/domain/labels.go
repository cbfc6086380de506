package domain

import "sort"

// LabelSet is a set of opaque, case-sensitive label strings.
// A nil LabelSet means "not given", which is distinct from an empty one.
type LabelSet map[string]struct{}

// NewLabelSet creates a LabelSet containing labels
func NewLabelSet(labels ...string) LabelSet {
	set := make(LabelSet, len(labels))
	for _, label := range labels {
		set[label] = struct{}{}
	}
	return set
}

// Has reports whether label is in the set
func (s LabelSet) Has(label string) bool {
	_, ok := s[label]
	return ok
}

// Intersects reports whether any of labels is in the set
func (s LabelSet) Intersects(labels []string) bool {
	for _, label := range labels {
		if s.Has(label) {
			return true
		}
	}
	return false
}

// Sorted returns the labels in lexical order
func (s LabelSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for label := range s {
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}
