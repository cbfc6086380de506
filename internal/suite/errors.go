package suite

import "fmt"

// UnconfiguredSuiteError is returned when a required identity attribute is missing
type UnconfiguredSuiteError struct {
	Suite     string // empty when the id itself is missing
	Attribute string
}

func (e *UnconfiguredSuiteError) Error() string {
	if e.Suite == "" {
		return fmt.Sprintf("%q property of a test suite must be set", e.Attribute)
	}
	return fmt.Sprintf("suite %q: %q property of a test suite must be set", e.Suite, e.Attribute)
}

// AssertionError marks a failed check inside a test case body
type AssertionError struct {
	Message string
}

func (e *AssertionError) Error() string {
	if e.Message == "" {
		return "AssertionError"
	}
	return "AssertionError: " + e.Message
}

// Assert returns an *AssertionError built from format and args when cond is false, nil otherwise
func Assert(cond bool, format string, args ...any) error {
	if cond {
		return nil
	}
	return &AssertionError{Message: fmt.Sprintf(format, args...)}
}

// Fail returns an *AssertionError unconditionally
func Fail(format string, args ...any) error {
	return &AssertionError{Message: fmt.Sprintf(format, args...)}
}
