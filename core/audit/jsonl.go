// Package audit persists a JSONL trail of accepted constraints and the
// actions applied for them. The trail is a session artifact for review,
// not a store of record; the schedule itself lives only in memory.
package audit

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/kilianp07/timetable/core/model"
)

// Record is one audited interpretation.
type Record struct {
	Constraint model.Constraint `json:"constraint"`
	Action     model.Action     `json:"action"`
	Fallback   bool             `json:"fallback"`
	Timestamp  time.Time        `json:"timestamp"`
}

// Query filters records on read.
type Query struct {
	Start      time.Time
	End        time.Time
	ActionKind model.ActionKind
	Type       model.ConstraintType
}

// Store appends and queries audit records.
type Store interface {
	Append(ctx context.Context, rec Record) error
	Records(ctx context.Context, q Query) ([]Record, error)
	Close() error
}

// JSONLStore stores records in a JSONL file, one object per line.
type JSONLStore struct {
	path string
	mu   sync.Mutex
}

// NewJSONLStore creates the file if needed and returns the store.
func NewJSONLStore(path string) (*JSONLStore, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	if cerr := f.Close(); cerr != nil {
		return nil, cerr
	}
	return &JSONLStore{path: path}, nil
}

// Append writes one record to the end of the file.
func (s *JSONLStore) Append(ctx context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return json.NewEncoder(f).Encode(rec)
}

// Records scans the file and returns the records matching the query.
// Unreadable lines are skipped rather than failing the whole scan.
func (s *JSONLStore) Records(ctx context.Context, q Query) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	var res []Record
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var r Record
		if err := json.Unmarshal(scanner.Bytes(), &r); err != nil {
			continue
		}
		if !q.Start.IsZero() && r.Timestamp.Before(q.Start) {
			continue
		}
		if !q.End.IsZero() && r.Timestamp.After(q.End) {
			continue
		}
		if q.ActionKind != "" && r.Action.Kind != q.ActionKind {
			continue
		}
		if q.Type != "" && r.Constraint.Type != q.Type {
			continue
		}
		res = append(res, r)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *JSONLStore) Close() error { return nil }
