package parse

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/timetable/core/model"
)

func TestAction_JSONFence(t *testing.T) {
	raw := "Sure, here is what I did:\n```json\n{\"action\": \"remove_subject\", \"details\": {\"subjects\": [\"Chemistry\"]}}\n```\nLet me know if that helps."
	a, err := Action(raw)
	require.NoError(t, err)
	assert.Equal(t, model.ActionRemoveSubject, a.Kind)
	assert.Equal(t, []string{"Chemistry"}, a.Subjects)
}

func TestAction_PlainFence(t *testing.T) {
	raw := "```\n{\"action\": \"change_teacher\", \"details\": {\"subject\": \"Physics\", \"teacherName\": \"Dr. Smooth\"}}\n```"
	a, err := Action(raw)
	require.NoError(t, err)
	assert.Equal(t, model.ActionChangeTeacher, a.Kind)
	assert.Equal(t, "Physics", a.Subject)
	assert.Equal(t, "Dr. Smooth", a.TeacherName)
}

func TestAction_BareObjectInProse(t *testing.T) {
	raw := `I restricted the subject as asked: {"action": "change_time", "details": {"subject": "Mathematics", "allowedTimeSlots": ["9:00", "10:00", "11:00"]}} — done.`
	a, err := Action(raw)
	require.NoError(t, err)
	assert.Equal(t, model.ActionChangeTime, a.Kind)
	assert.Equal(t, []model.TimeSlot{model.Slot9, model.Slot10, model.Slot11}, a.AllowedTimeSlots)
}

func TestAction_BraceInsideStringValue(t *testing.T) {
	raw := `{"action": "change_teacher", "details": {"subject": "Physics", "teacherName": "Dr. {Smooth}"}}`
	a, err := Action(raw)
	require.NoError(t, err)
	assert.Equal(t, "Dr. {Smooth}", a.TeacherName)
}

func TestAction_NoChangeWithoutDetails(t *testing.T) {
	a, err := Action(`{"action": "no_change"}`)
	require.NoError(t, err)
	assert.Equal(t, model.ActionNoChange, a.Kind)
}

func TestAction_Failures(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"no object at all", "I could not understand the request, sorry."},
		{"unknown tag", `{"action": "reschedule_everything", "details": {}}`},
		{"missing required field", `{"action": "change_teacher", "details": {"subject": "Physics"}}`},
		{"empty subjects", `{"action": "remove_subject", "details": {"subjects": []}}`},
		{"invalid slot", `{"action": "change_time", "details": {"subject": "Math", "allowedTimeSlots": ["8:00"]}}`},
		{"details missing", `{"action": "remove_subject"}`},
		{"truncated json", "```json\n{\"action\": \"remove_subject\", \"details\":\n```"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Action(c.raw)
			if !errors.Is(err, ErrParseFailure) {
				t.Fatalf("expected ErrParseFailure, got %v", err)
			}
		})
	}
}

func TestAction_FirstExtractionWins(t *testing.T) {
	raw := "```json\n{\"action\": \"no_change\", \"details\": {}}\n```\n" +
		`{"action": "remove_subject", "details": {"subjects": ["Chemistry"]}}`
	a, err := Action(raw)
	require.NoError(t, err)
	assert.Equal(t, model.ActionNoChange, a.Kind)
}
