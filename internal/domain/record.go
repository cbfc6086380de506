package domain

import "time"

// Record is the persisted form of an Outcome in the result log
type Record struct {
	RunID          string  `json:"run_id,omitempty"`
	Suite          string  `json:"suite,omitempty"`
	Name           string  `json:"name"`
	StartTimestamp float64 `json:"start_timestamp"`
	DurationS      float64 `json:"duration_s"`
	StatusCode     int     `json:"status_code"`
	Message        *string `json:"message"`
}

// NewRecord converts an outcome into its stored form. Pass outcomes store a null message.
func NewRecord(runID, suiteID string, o Outcome) Record {
	r := Record{
		RunID:          runID,
		Suite:          suiteID,
		Name:           o.Name,
		StartTimestamp: o.StartTimestamp(),
		DurationS:      o.DurationSeconds(),
		StatusCode:     int(o.Status),
	}
	if o.Message != "" {
		msg := o.Message
		r.Message = &msg
	}
	return r
}

// Outcome converts a stored record back into an Outcome
func (r Record) Outcome() Outcome {
	sec := int64(r.StartTimestamp)
	nsec := int64((r.StartTimestamp - float64(sec)) * float64(time.Second))
	o := Outcome{
		Name:      r.Name,
		StartTime: time.Unix(sec, nsec),
		Duration:  time.Duration(r.DurationS * float64(time.Second)),
		Status:    Status(r.StatusCode),
	}
	if r.Message != nil {
		o.Message = *r.Message
	}
	return o
}
