package domain

import (
	"fmt"
	"time"
)

// Status is the numeric result code of a test case
type Status int

const (
	StatusPass Status = 0
	StatusFail Status = 1
	StatusSkip Status = 2
)

// SkippedMessage is the message recorded for every case of a filtered-out suite
const SkippedMessage = "Skipped"

// String returns the lower-case name of the status
func (s Status) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusFail:
		return "fail"
	case StatusSkip:
		return "skip"
	default:
		return "unknown"
	}
}

// Valid reports whether s is one of the known status codes
func (s Status) Valid() bool {
	return s == StatusPass || s == StatusFail || s == StatusSkip
}

// Outcome is the immutable record of one test case's result
type Outcome struct {
	Name      string        // Test case name, unique within its suite
	StartTime time.Time     // Wall-clock time the case began (or the skip decision)
	Duration  time.Duration // Elapsed time of the attempt, zero for skips
	Status    Status
	Message   string // Empty for pass
}

// NewSkipped creates the outcome of a case that belongs to a filtered-out suite
func NewSkipped(name string, at time.Time) Outcome {
	return Outcome{
		Name:      name,
		StartTime: at,
		Status:    StatusSkip,
		Message:   SkippedMessage,
	}
}

// StartTimestamp returns the start time as floating point seconds since epoch
func (o Outcome) StartTimestamp() float64 {
	return float64(o.StartTime.Unix()) + float64(o.StartTime.Nanosecond())/float64(time.Second)
}

// DurationSeconds returns the duration in seconds
func (o Outcome) DurationSeconds() float64 {
	return o.Duration.Seconds()
}

func (o Outcome) String() string {
	return fmt.Sprintf("Outcome(name: %q, start time: %s, duration: %.2f seconds, status code: %d (%s), message: %q)",
		o.Name,
		o.StartTime.Format("2006-01-02 15:04:05.000000"),
		o.DurationSeconds(),
		int(o.Status),
		o.Status,
		o.Message,
	)
}
