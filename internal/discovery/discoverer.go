package discovery

import (
	"fmt"

	"go.uber.org/zap"

	"insecticide/internal/suite"
)

// Error is a discovery problem attributable to one source
type Error struct {
	Source string
	Suite  string // factory name, empty when the source itself failed
	Err    error
}

func (e *Error) Error() string {
	if e.Suite == "" {
		return fmt.Sprintf("discovery of %s failed: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("discovery of %q in %s failed: %v", e.Suite, e.Source, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Discoverer resolves manifest sources into instantiated suites
type Discoverer struct {
	registry *suite.Registry
	parser   *Parser
	logger   *zap.Logger
}

// NewDiscoverer creates a new Discoverer
func NewDiscoverer(registry *suite.Registry, parser *Parser, logger *zap.Logger) *Discoverer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Discoverer{
		registry: registry,
		parser:   parser,
		logger:   logger,
	}
}

// Discover loads every source in order and instantiates the suites it declares.
// A broken source or suite is reported and discovery continues with the rest.
func (d *Discoverer) Discover(sources []string) ([]suite.Suite, []error) {
	var suites []suite.Suite
	var errs []error

	for _, source := range sources {
		names, err := d.parser.ParseManifest(source)
		if err != nil {
			errs = append(errs, &Error{Source: source, Err: err})
			continue
		}

		found := d.Resolve(source, names, &errs)
		d.logger.Info("Found test suite(s) in source",
			zap.String("source", source),
			zap.Int("count", len(found)),
			zap.Strings("suites", names),
		)
		suites = append(suites, found...)
	}

	return suites, errs
}

// Resolve instantiates the named factories, appending problems to errs
func (d *Discoverer) Resolve(source string, names []string, errs *[]error) []suite.Suite {
	var suites []suite.Suite
	for _, name := range names {
		s, err := d.instantiate(name)
		if err != nil {
			*errs = append(*errs, &Error{Source: source, Suite: name, Err: err})
			continue
		}
		suites = append(suites, s)
	}
	return suites
}

func (d *Discoverer) instantiate(name string) (s suite.Suite, err error) {
	factory, ok := d.registry.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("no suite registered as %q", name)
	}

	defer func() {
		if r := recover(); r != nil {
			s, err = nil, fmt.Errorf("factory panicked: %v", r)
		}
	}()

	s, err = factory()
	if err != nil {
		return nil, err
	}
	if err := suite.Validate(s); err != nil {
		return nil, err
	}
	return s, nil
}
