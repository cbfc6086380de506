package storage

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"insecticide/internal/domain"
)

// JSONResultLog appends records as JSON lines to a file
type JSONResultLog struct {
	path string
	mu   sync.Mutex
}

// NewJSONResultLog returns a ResultLog writing to path
func NewJSONResultLog(path string) *JSONResultLog {
	return &JSONResultLog{path: path}
}

// Path returns the file the log writes to
func (s *JSONResultLog) Path() string {
	return s.path
}

// Append encodes the whole batch first and writes it with a single call.
// A failed write truncates the file back to its previous size.
func (s *JSONResultLog) Append(ctx context.Context, records []domain.Record) error {
	if err := ctx.Err(); err != nil {
		return persistenceErr("append", err)
	}
	if len(records) == 0 {
		return nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return persistenceErr("append", errors.Wrapf(err, "encode record %q", r.Name))
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return persistenceErr("append", errors.Wrap(err, "create output dir"))
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return persistenceErr("append", errors.Wrap(err, "open result log"))
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return persistenceErr("append", errors.Wrap(err, "stat result log"))
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		_ = f.Truncate(info.Size())
		return persistenceErr("append", errors.Wrap(err, "write result log"))
	}
	if err := f.Sync(); err != nil {
		return persistenceErr("append", errors.Wrap(err, "sync result log"))
	}
	return nil
}

// LastRun reads the records of the most recently appended run
func (s *JSONResultLog) LastRun(ctx context.Context) (*Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, persistenceErr("read", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		return nil, persistenceErr("read", errors.Wrap(err, "read results file"))
	}
	defer f.Close()

	var records []domain.Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for line := 1; scanner.Scan(); line++ {
		if len(bytes.TrimSpace(scanner.Bytes())) == 0 {
			continue
		}
		var r domain.Record
		if err := json.Unmarshal(scanner.Bytes(), &r); err != nil {
			return nil, persistenceErr("read", errors.Wrapf(err, "parse results line %d", line))
		}
		records = append(records, r)
	}
	if err := scanner.Err(); err != nil {
		return nil, persistenceErr("read", errors.Wrap(err, "scan results file"))
	}
	if len(records) == 0 {
		return nil, persistenceErr("read", errors.New("results file is empty"))
	}

	run := &Run{ID: records[len(records)-1].RunID}
	for _, r := range records {
		if r.RunID == run.ID {
			run.Records = append(run.Records, r)
		}
	}
	return run, nil
}

// Close is a no-op, the file is opened per operation
func (s *JSONResultLog) Close() error {
	return nil
}
