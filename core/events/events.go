// Package events defines the pipeline events published on the internal
// bus while an utterance moves through the orchestrator.
package events

import "github.com/kilianp07/timetable/core/model"

// StageEvent reports an orchestrator state transition for one utterance.
type StageEvent struct {
	State     string
	Utterance string
	Err       error
}

// ScheduleUpdated reports that a new schedule value replaced the
// previous one. Schedule is the applied snapshot; subscribers must not
// mutate it.
type ScheduleUpdated struct {
	Schedule model.Schedule
	Items    int
	Fallback bool
}
