package mqtt

import (
	"fmt"
	"sync"

	"github.com/kilianp07/timetable/core/model"
)

// MockPublisher records published updates for tests.
type MockPublisher struct {
	mu       sync.Mutex
	Updates  []model.Schedule
	Fallback []bool
	Fail     bool
	Closed   bool
}

// NewMockPublisher creates a new MockPublisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

// PublishScheduleUpdate records the update or returns an error if
// configured to fail.
func (m *MockPublisher) PublishScheduleUpdate(schedule model.Schedule, fallback bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail {
		return fmt.Errorf("publish failed")
	}
	m.Updates = append(m.Updates, schedule.Clone())
	m.Fallback = append(m.Fallback, fallback)
	return nil
}

// Close marks the publisher closed.
func (m *MockPublisher) Close() {
	m.mu.Lock()
	m.Closed = true
	m.mu.Unlock()
}
