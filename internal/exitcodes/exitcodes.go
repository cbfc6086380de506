// Package exitcodes defines the exit codes of the insecticide binary.
package exitcodes

// * Success (0): every test case passed or was skipped
// * TestFailure (1): one or more test cases failed
// * RuntimeErr (2): configuration, discovery setup or persistence failures
const (
	Success     = 0 // All tests pass
	TestFailure = 1 // Test failures
	RuntimeErr  = 2 // Runtime errors
)
