package model

import "strings"

// Day identifies a weekday column of the timetable grid.
type Day string

const (
	Monday    Day = "Monday"
	Tuesday   Day = "Tuesday"
	Wednesday Day = "Wednesday"
	Thursday  Day = "Thursday"
	Friday    Day = "Friday"
)

// Days returns the weekdays in grid order.
func Days() []Day {
	return []Day{Monday, Tuesday, Wednesday, Thursday, Friday}
}

// Valid reports whether the day is one of the five weekdays.
func (d Day) Valid() bool {
	switch d {
	case Monday, Tuesday, Wednesday, Thursday, Friday:
		return true
	}
	return false
}

// TimeSlot is an hourly slot between 9:00 and 17:00.
type TimeSlot string

const (
	Slot9  TimeSlot = "9:00"
	Slot10 TimeSlot = "10:00"
	Slot11 TimeSlot = "11:00"
	Slot12 TimeSlot = "12:00"
	Slot13 TimeSlot = "13:00"
	Slot14 TimeSlot = "14:00"
	Slot15 TimeSlot = "15:00"
	Slot16 TimeSlot = "16:00"
	Slot17 TimeSlot = "17:00"
)

// TimeSlots returns all hourly slots in chronological order.
func TimeSlots() []TimeSlot {
	return []TimeSlot{Slot9, Slot10, Slot11, Slot12, Slot13, Slot14, Slot15, Slot16, Slot17}
}

// MorningSlots returns the slots considered "morning" by time constraints.
func MorningSlots() []TimeSlot {
	return []TimeSlot{Slot9, Slot10, Slot11}
}

// AfternoonSlots returns the slots considered "afternoon" by time constraints.
func AfternoonSlots() []TimeSlot {
	return []TimeSlot{Slot13, Slot14, Slot15, Slot16, Slot17}
}

// Valid reports whether the slot is one of the nine hourly slots.
func (t TimeSlot) Valid() bool {
	for _, s := range TimeSlots() {
		if t == s {
			return true
		}
	}
	return false
}

// ScheduleItem is a single placed lesson. Identity is the ID; the
// (day, timeSlot, className) triple is kept unique by the transformer.
type ScheduleItem struct {
	ID          string   `json:"id"`
	Subject     string   `json:"subject"`
	Day         Day      `json:"day"`
	TimeSlot    TimeSlot `json:"timeSlot"`
	ClassName   string   `json:"className"`
	TeacherName string   `json:"teacherName"`
	Color       string   `json:"color,omitempty"`
}

// Schedule is the weekly timetable. Order is display order only and
// carries no semantics. Schedules are replaced wholesale, never mutated
// in place, so a previous value stays valid for diffing by callers.
type Schedule []ScheduleItem

// Clone returns a copy that shares no backing storage with s.
func (s Schedule) Clone() Schedule {
	if s == nil {
		return Schedule{}
	}
	out := make(Schedule, len(s))
	copy(out, s)
	return out
}

// Subjects returns the distinct subject names in first-seen order.
func (s Schedule) Subjects() []string {
	seen := make(map[string]bool, len(s))
	var out []string
	for _, it := range s {
		key := strings.ToLower(it.Subject)
		if it.Subject == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, it.Subject)
	}
	return out
}

// HasSubject reports whether any item carries the subject, ignoring case.
func (s Schedule) HasSubject(name string) bool {
	for _, it := range s {
		if SubjectEquals(it.Subject, name) {
			return true
		}
	}
	return false
}

// SlotFree reports whether no item of the class occupies the day and slot.
func (s Schedule) SlotFree(d Day, t TimeSlot, className string) bool {
	for _, it := range s {
		if it.Day == d && it.TimeSlot == t && it.ClassName == className {
			return false
		}
	}
	return true
}

// SubjectEquals compares subject names ignoring case.
func SubjectEquals(a, b string) bool {
	return strings.EqualFold(a, b)
}

// subjectColors maps well-known subjects to their display color.
var subjectColors = map[string]string{
	"Mathematics":        "rgba(114, 190, 229, 0.8)",
	"Physics":            "rgba(245, 171, 112, 0.8)",
	"Chemistry":          "rgba(149, 186, 131, 0.8)",
	"Biology":            "rgba(196, 159, 204, 0.8)",
	"History":            "rgba(250, 208, 137, 0.8)",
	"Literature":         "rgba(173, 216, 230, 0.8)",
	"Computer Science":   "rgba(174, 198, 207, 0.8)",
	"Physical Education": "rgba(179, 222, 193, 0.8)",
	"Art":                "rgba(225, 170, 203, 0.8)",
	"Music":              "rgba(168, 190, 226, 0.8)",
}

// ColorFor returns the display color for a subject, with a neutral
// default for subjects outside the known palette.
func ColorFor(subject string) string {
	if c, ok := subjectColors[subject]; ok {
		return c
	}
	return "rgba(200, 200, 200, 0.8)"
}
