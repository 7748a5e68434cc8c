// Package session holds the in-memory state of one scheduling session:
// the current schedule, the accepted constraints and the chat
// transcript. Nothing is persisted beyond the process lifetime.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/timetable/core/model"
)

// Store is safe for concurrent readers. Schedules are swapped wholesale
// under the lock, so a reader never observes a half-applied mutation.
type Store struct {
	mu          sync.RWMutex
	schedule    model.Schedule
	constraints []model.Constraint
	messages    []model.Message
}

// New creates a Store seeded with the initial schedule.
func New(initial model.Schedule) *Store {
	return &Store{schedule: initial.Clone()}
}

// Schedule returns a copy of the current schedule.
func (s *Store) Schedule() model.Schedule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.schedule.Clone()
}

// SetSchedule replaces the current schedule.
func (s *Store) SetSchedule(sched model.Schedule) {
	s.mu.Lock()
	s.schedule = sched.Clone()
	s.mu.Unlock()
}

// AddConstraint appends a constraint record.
func (s *Store) AddConstraint(c model.Constraint) {
	s.mu.Lock()
	s.constraints = append(s.constraints, c)
	s.mu.Unlock()
}

// Constraints returns a copy of the accepted constraints.
func (s *Store) Constraints() []model.Constraint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Constraint, len(s.constraints))
	copy(out, s.constraints)
	return out
}

// RemoveConstraint drops the constraint with the given id and reports
// whether it existed. The schedule is not rolled back; constraints are
// audit records, not reversible mutations.
func (s *Store) RemoveConstraint(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.constraints {
		if c.ID == id {
			s.constraints = append(s.constraints[:i], s.constraints[i+1:]...)
			return true
		}
	}
	return false
}

// AddMessage appends a transcript entry and returns it.
func (s *Store) AddMessage(sender model.Sender, text string) model.Message {
	msg := model.Message{
		ID:        uuid.NewString(),
		Text:      text,
		Sender:    sender,
		Timestamp: time.Now().UTC(),
	}
	s.mu.Lock()
	s.messages = append(s.messages, msg)
	s.mu.Unlock()
	return msg
}

// Messages returns a copy of the transcript.
func (s *Store) Messages() []model.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Message, len(s.messages))
	copy(out, s.messages)
	return out
}
