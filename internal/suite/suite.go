// Package suite defines the contract every test suite satisfies and the
// building blocks suite authors use to declare one.
package suite

import "fmt"

// Suite is the capability set the execution engine relies on
type Suite interface {
	ID() string
	Description() string
	Labels() []string
	Setup() error
	Teardown() error
	Cases() []Case
}

// Case is a single named check of a suite
type Case struct {
	Name string
	Run  func() error
}

// Definition holds the identity attributes a suite must declare
type Definition struct {
	ID          string
	Description string
	Labels      []string // must be non-nil, may be empty
}

// Base implements Suite with no-op lifecycle hooks. Suite variants embed it
// and override Setup/Teardown as needed.
type Base struct {
	def   Definition
	cases []Case
}

// New validates def and cases and returns a Base ready to embed
func New(def Definition, cases ...Case) (*Base, error) {
	if err := validateDefinition(def); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(cases))
	for i, c := range cases {
		if c.Name == "" {
			return nil, fmt.Errorf("suite %q: case at index %d has no name", def.ID, i)
		}
		if c.Run == nil {
			return nil, fmt.Errorf("suite %q: case %q has no body", def.ID, c.Name)
		}
		if seen[c.Name] {
			return nil, fmt.Errorf("suite %q: duplicate case name %q", def.ID, c.Name)
		}
		seen[c.Name] = true
	}

	labels := make([]string, len(def.Labels))
	copy(labels, def.Labels)
	def.Labels = labels

	return &Base{
		def:   def,
		cases: append([]Case(nil), cases...),
	}, nil
}

// MustNew is like New but panics on an invalid definition
func MustNew(def Definition, cases ...Case) *Base {
	b, err := New(def, cases...)
	if err != nil {
		panic(err)
	}
	return b
}

func (b *Base) ID() string          { return b.def.ID }
func (b *Base) Description() string { return b.def.Description }
func (b *Base) Setup() error        { return nil }
func (b *Base) Teardown() error     { return nil }

// Labels returns a copy of the suite labels
func (b *Base) Labels() []string {
	out := make([]string, len(b.def.Labels))
	copy(out, b.def.Labels)
	return out
}

// Cases returns the cases in declaration order
func (b *Base) Cases() []Case {
	return append([]Case(nil), b.cases...)
}

// CaseNames returns the case names of s in declaration order
func CaseNames(s Suite) []string {
	cases := s.Cases()
	names := make([]string, 0, len(cases))
	for _, c := range cases {
		names = append(names, c.Name)
	}
	return names
}

// Validate checks the identity attributes of any Suite implementation
func Validate(s Suite) error {
	if s == nil {
		return fmt.Errorf("suite is nil")
	}
	return validateDefinition(Definition{
		ID:          s.ID(),
		Description: s.Description(),
		Labels:      s.Labels(),
	})
}

func validateDefinition(def Definition) error {
	switch {
	case def.ID == "":
		return &UnconfiguredSuiteError{Attribute: "id"}
	case def.Description == "":
		return &UnconfiguredSuiteError{Suite: def.ID, Attribute: "description"}
	case def.Labels == nil:
		return &UnconfiguredSuiteError{Suite: def.ID, Attribute: "labels"}
	}
	return nil
}
