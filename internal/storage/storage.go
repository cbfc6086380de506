package storage

import (
	"context"
	"fmt"

	"insecticide/internal/domain"
)

// ConfigStore is a durable string key/value store
type ConfigStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	// Set upserts a single value.
	Set(ctx context.Context, key, value string) error
	// SetMany upserts all values atomically.
	SetMany(ctx context.Context, values map[string]string) error
	All(ctx context.Context) (map[string]string, error)
	Close() error
}

// ResultLog is an append-only store of outcome records
type ResultLog interface {
	// Append stores the whole batch or nothing.
	Append(ctx context.Context, records []domain.Record) error
	Close() error
}

// RunReader reads back stored runs. Only logs that keep run ids implement it.
type RunReader interface {
	LastRun(ctx context.Context) (*Run, error)
}

// Run is the stored outcome records of one run
type Run struct {
	ID      string
	Records []domain.Record
}

// Failures returns the records with a fail status
func (r *Run) Failures() []domain.Record {
	var failed []domain.Record
	for _, rec := range r.Records {
		if domain.Status(rec.StatusCode) == domain.StatusFail {
			failed = append(failed, rec)
		}
	}
	return failed
}

// Summary counts the stored outcomes
func (r *Run) Summary() domain.Summary {
	outcomes := make([]domain.Outcome, 0, len(r.Records))
	for _, rec := range r.Records {
		outcomes = append(outcomes, rec.Outcome())
	}
	return domain.Summarize(outcomes)
}

// PersistenceError wraps any failure of a configuration store or result log operation
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence error during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func persistenceErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}
