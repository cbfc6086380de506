// Package examples holds the sample suites shipped with insecticide.
package examples

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"insecticide/internal/suite"
)

// Registered factory names
const (
	PassSuite   = "example_pass"
	FailSuite   = "example_fail"
	RandomSuite = "example_random"
)

// Register adds the example suites to reg
func Register(reg *suite.Registry, logger *zap.Logger) error {
	factories := []struct {
		name    string
		factory suite.Factory
	}{
		{PassSuite, func() (suite.Suite, error) { return NewPassSuite() }},
		{FailSuite, func() (suite.Suite, error) { return NewFailSuite() }},
		{RandomSuite, func() (suite.Suite, error) {
			rng := rand.New(rand.NewSource(time.Now().UnixNano()))
			return NewRandomSuite(logger, rng.Float64)
		}},
	}

	for _, f := range factories {
		if err := reg.Register(f.name, f.factory); err != nil {
			return err
		}
	}
	return nil
}

// NewPassSuite returns a suite whose single case always passes
func NewPassSuite() (*suite.Base, error) {
	return suite.New(suite.Definition{
		ID:          "example_suite_001",
		Description: "Example suite with a passing test case.",
		Labels:      []string{"example", "suite", "first"},
	}, suite.Case{Name: "test_pass", Run: func() error {
		return suite.Assert(true, "always passes")
	}})
}

// NewFailSuite returns a suite whose single case always fails
func NewFailSuite() (*suite.Base, error) {
	return suite.New(suite.Definition{
		ID:          "example_suite_002",
		Description: "Example suite with a failing test case.",
		Labels:      []string{"example", "suite", "second"},
	}, suite.Case{Name: "test_fail", Run: func() error {
		return suite.Fail("always fails")
	}})
}

// Random is a stateful suite whose cases pass or fail on a random draw
type Random struct {
	*suite.Base
	something int
	random    func() float64
	logger    *zap.Logger
}

// NewRandomSuite builds the random suite drawing values from random
func NewRandomSuite(logger *zap.Logger, random func() float64) (*Random, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Random{random: random, logger: logger}

	base, err := suite.New(suite.Definition{
		ID:          "example_suite_003",
		Description: "Example suite with setup state and random outcomes.",
		Labels:      []string{"example", "suite", "third"},
	},
		suite.Case{Name: "test_random_1", Run: s.testRandomAbove},
		suite.Case{Name: "test_random_2", Run: s.testRandomBelow},
	)
	if err != nil {
		return nil, err
	}
	s.Base = base
	return s, nil
}

func (s *Random) Setup() error {
	s.something = 1
	return nil
}

func (s *Random) Teardown() error {
	s.something = 0
	return nil
}

func (s *Random) draw() float64 {
	v := s.random()
	s.logger.Info("Drew a random value", zap.Int("something", s.something), zap.Float64("value", v))
	return v
}

func (s *Random) testRandomAbove() error {
	if s.draw() > 0.5 {
		s.logger.Info("Something random is greater than 0.5")
		return nil
	}
	return suite.Fail("Something random is less than 0.5")
}

func (s *Random) testRandomBelow() error {
	if s.draw() < 0.5 {
		s.logger.Info("Something random is less than 0.5")
		return nil
	}
	return suite.Fail("Something random is greater than 0.5")
}
