package model

import "fmt"

// ActionKind tags the structured instruction derived from an utterance.
type ActionKind string

const (
	ActionRemoveSubject ActionKind = "remove_subject"
	ActionChangeTeacher ActionKind = "change_teacher"
	ActionChangeTime    ActionKind = "change_time"
	ActionAddSubject    ActionKind = "add_subject"
	ActionNoChange      ActionKind = "no_change"
)

// Known reports whether the kind is part of the action vocabulary.
func (k ActionKind) Known() bool {
	switch k {
	case ActionRemoveSubject, ActionChangeTeacher, ActionChangeTime, ActionAddSubject, ActionNoChange:
		return true
	}
	return false
}

// Action is the contract between interpreter output and the schedule
// transformer. Only the fields relevant to Kind are populated; an Action
// is immutable once built.
type Action struct {
	Kind             ActionKind `json:"kind"`
	Subjects         []string   `json:"subjects,omitempty"`
	Subject          string     `json:"subject,omitempty"`
	TeacherName      string     `json:"teacherName,omitempty"`
	AllowedTimeSlots []TimeSlot `json:"allowedTimeSlots,omitempty"`
	Day              Day        `json:"day,omitempty"`
	TimeSlot         TimeSlot   `json:"timeSlot,omitempty"`
	ClassName        string     `json:"className,omitempty"`
}

// RemoveSubject builds an action dropping every item of the named subjects.
func RemoveSubject(subjects ...string) Action {
	return Action{Kind: ActionRemoveSubject, Subjects: subjects}
}

// ChangeTeacher builds an action reassigning the subject to a teacher.
func ChangeTeacher(subject, teacherName string) Action {
	return Action{Kind: ActionChangeTeacher, Subject: subject, TeacherName: teacherName}
}

// ChangeTime builds an action restricting the subject to the given slots.
func ChangeTime(subject string, allowed []TimeSlot) Action {
	return Action{Kind: ActionChangeTime, Subject: subject, AllowedTimeSlots: allowed}
}

// AddSubject builds an action inserting a lesson for the class. Day and
// timeSlot may be empty, in which case the transformer picks the first
// free slot.
func AddSubject(subject string, day Day, slot TimeSlot, className string) Action {
	return Action{Kind: ActionAddSubject, Subject: subject, Day: day, TimeSlot: slot, ClassName: className}
}

// NoChange builds the identity action.
func NoChange() Action {
	return Action{Kind: ActionNoChange}
}

// Validate checks that the fields required by the kind are present and
// well formed. An invalid Action must never reach the transformer.
func (a Action) Validate() error {
	switch a.Kind {
	case ActionRemoveSubject:
		if len(a.Subjects) == 0 {
			return fmt.Errorf("action %s: subjects required", a.Kind)
		}
		for _, s := range a.Subjects {
			if s == "" {
				return fmt.Errorf("action %s: empty subject", a.Kind)
			}
		}
	case ActionChangeTeacher:
		if a.Subject == "" || a.TeacherName == "" {
			return fmt.Errorf("action %s: subject and teacherName required", a.Kind)
		}
	case ActionChangeTime:
		if a.Subject == "" {
			return fmt.Errorf("action %s: subject required", a.Kind)
		}
		if len(a.AllowedTimeSlots) == 0 {
			return fmt.Errorf("action %s: allowedTimeSlots required", a.Kind)
		}
		for _, t := range a.AllowedTimeSlots {
			if !t.Valid() {
				return fmt.Errorf("action %s: invalid time slot %q", a.Kind, t)
			}
		}
	case ActionAddSubject:
		if a.Subject == "" || a.ClassName == "" {
			return fmt.Errorf("action %s: subject and className required", a.Kind)
		}
		if a.Day != "" && !a.Day.Valid() {
			return fmt.Errorf("action %s: invalid day %q", a.Kind, a.Day)
		}
		if a.TimeSlot != "" && !a.TimeSlot.Valid() {
			return fmt.Errorf("action %s: invalid time slot %q", a.Kind, a.TimeSlot)
		}
	case ActionNoChange:
	default:
		return fmt.Errorf("unknown action kind %q", a.Kind)
	}
	return nil
}
