// Package roster provides read-only access to the teacher and class
// rosters. Rosters are owned and edited by external collaborators; the
// core only consults them to resolve default teacher assignment and to
// seed a session schedule.
package roster

import (
	"github.com/google/uuid"

	"github.com/kilianp07/timetable/core/model"
)

// UnassignedTeacher is used when no roster teacher covers a subject.
const UnassignedTeacher = "Unassigned"

// Directory exposes the rosters to the core. It is immutable after
// construction.
type Directory struct {
	teachers []model.Teacher
	classes  []model.ClassGroup
}

// New builds a Directory over copies of the given rosters.
func New(teachers []model.Teacher, classes []model.ClassGroup) *Directory {
	d := &Directory{
		teachers: make([]model.Teacher, len(teachers)),
		classes:  make([]model.ClassGroup, len(classes)),
	}
	copy(d.teachers, teachers)
	copy(d.classes, classes)
	return d
}

// Teachers returns a copy of the teacher roster.
func (d *Directory) Teachers() []model.Teacher {
	out := make([]model.Teacher, len(d.teachers))
	copy(out, d.teachers)
	return out
}

// Classes returns a copy of the class roster.
func (d *Directory) Classes() []model.ClassGroup {
	out := make([]model.ClassGroup, len(d.classes))
	copy(out, d.classes)
	return out
}

// TeacherFor returns the name of the first roster teacher covering the
// subject, or UnassignedTeacher when none does.
func (d *Directory) TeacherFor(subject string) string {
	for _, t := range d.teachers {
		for _, s := range t.Subjects {
			if model.SubjectEquals(s, subject) {
				return t.Name
			}
		}
	}
	return UnassignedTeacher
}

// Seed returns the sample rosters used when no external collaborator
// supplies any.
func Seed() *Directory {
	teachers := []model.Teacher{
		{ID: "t1", Name: "Dr. Smith", Subjects: []string{"Physics", "Mathematics"}},
		{ID: "t2", Name: "Mrs. Johnson", Subjects: []string{"Chemistry", "Biology"}},
		{ID: "t3", Name: "Mr. Davis", Subjects: []string{"History", "Literature"}},
		{ID: "t4", Name: "Ms. Wilson", Subjects: []string{"Computer Science", "Art"}},
		{ID: "t5", Name: "Mr. Brown", Subjects: []string{"Physical Education", "Music"}},
	}
	classes := []model.ClassGroup{
		{ID: "c1", Name: "10A", Subjects: []string{"Mathematics", "Physics", "Chemistry", "History", "Literature"}},
		{ID: "c2", Name: "10B", Subjects: []string{"Mathematics", "Biology", "Computer Science", "Art", "Music"}},
	}
	return New(teachers, classes)
}

// SeedSchedule builds a deterministic starting schedule from the class
// roster: up to four subjects per class, spread over the week, skipping
// occupied slots so the (day, timeSlot, className) key stays unique.
func SeedSchedule(d *Directory) model.Schedule {
	var schedule model.Schedule
	days := model.Days()
	slots := model.TimeSlots()
	for ci, cls := range d.Classes() {
		subjects := cls.Subjects
		if len(subjects) > 4 {
			subjects = subjects[:4]
		}
		for si, subject := range subjects {
			day := days[(ci+si)%len(days)]
			slot := slots[(ci*2+si)%len(slots)]
			if !schedule.SlotFree(day, slot, cls.Name) {
				continue
			}
			schedule = append(schedule, model.ScheduleItem{
				ID:          uuid.NewString(),
				Subject:     subject,
				Day:         day,
				TimeSlot:    slot,
				ClassName:   cls.Name,
				TeacherName: d.TeacherFor(subject),
				Color:       model.ColorFor(subject),
			})
		}
	}
	return schedule
}
