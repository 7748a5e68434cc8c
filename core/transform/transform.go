// Package transform applies validated actions to schedules. Apply is a
// pure function over its inputs: the incoming schedule is never mutated
// and a fresh value is returned on every call, so callers can keep the
// previous schedule for rollback or diffing.
package transform

import (
	"github.com/google/uuid"

	"github.com/kilianp07/timetable/core/model"
	"github.com/kilianp07/timetable/core/roster"
)

// Transformer applies actions. The roster is consulted read-only to
// resolve default teacher assignment when inserting lessons.
type Transformer struct {
	roster *roster.Directory
}

// New creates a Transformer over the given roster directory.
func New(r *roster.Directory) *Transformer {
	return &Transformer{roster: r}
}

// Apply returns a new schedule with the action applied. Every branch is
// total: an action whose target is absent from the schedule is a silent
// no-op, and items unrelated to the action are never touched.
func (t *Transformer) Apply(s model.Schedule, a model.Action) model.Schedule {
	switch a.Kind {
	case model.ActionRemoveSubject:
		return removeSubjects(s, a.Subjects)
	case model.ActionChangeTeacher:
		return changeTeacher(s, a.Subject, a.TeacherName)
	case model.ActionChangeTime:
		return changeTime(s, a.Subject, a.AllowedTimeSlots)
	case model.ActionAddSubject:
		return t.addSubject(s, a)
	default:
		return s.Clone()
	}
}

func removeSubjects(s model.Schedule, subjects []string) model.Schedule {
	out := make(model.Schedule, 0, len(s))
	for _, it := range s {
		if matchesAny(it.Subject, subjects) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func changeTeacher(s model.Schedule, subject, teacherName string) model.Schedule {
	out := s.Clone()
	for i := range out {
		if model.SubjectEquals(out[i].Subject, subject) {
			out[i].TeacherName = teacherName
		}
	}
	return out
}

func changeTime(s model.Schedule, subject string, allowed []model.TimeSlot) model.Schedule {
	out := make(model.Schedule, 0, len(s))
	for _, it := range s {
		if model.SubjectEquals(it.Subject, subject) && !slotAllowed(it.TimeSlot, allowed) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// addSubject inserts a lesson when the target slot is free for the
// class, preserving the (day, timeSlot, className) uniqueness key. When
// day or timeSlot is unspecified the first free slot is used, scanning
// days then slots in grid order.
func (t *Transformer) addSubject(s model.Schedule, a model.Action) model.Schedule {
	day, slot, ok := resolveSlot(s, a)
	if !ok {
		return s.Clone()
	}
	out := s.Clone()
	return append(out, model.ScheduleItem{
		ID:          uuid.NewString(),
		Subject:     a.Subject,
		Day:         day,
		TimeSlot:    slot,
		ClassName:   a.ClassName,
		TeacherName: t.roster.TeacherFor(a.Subject),
		Color:       model.ColorFor(a.Subject),
	})
}

func resolveSlot(s model.Schedule, a model.Action) (model.Day, model.TimeSlot, bool) {
	days := model.Days()
	slots := model.TimeSlots()
	if a.Day != "" {
		days = []model.Day{a.Day}
	}
	if a.TimeSlot != "" {
		slots = []model.TimeSlot{a.TimeSlot}
	}
	for _, d := range days {
		for _, ts := range slots {
			if s.SlotFree(d, ts, a.ClassName) {
				return d, ts, true
			}
		}
	}
	return "", "", false
}

func matchesAny(subject string, subjects []string) bool {
	for _, s := range subjects {
		if model.SubjectEquals(subject, s) {
			return true
		}
	}
	return false
}

func slotAllowed(slot model.TimeSlot, allowed []model.TimeSlot) bool {
	for _, a := range allowed {
		if slot == a {
			return true
		}
	}
	return false
}
