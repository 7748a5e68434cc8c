// Package prompt assembles the request text sent to the external
// interpreter. The builder encodes the fixed action vocabulary precisely
// enough that a well-behaved reply can be parsed without guessing.
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kilianp07/timetable/core/model"
)

// vocabulary enumerates the allowed action kinds, one example per kind.
// Field names are exact; the parser does not tolerate casing drift.
const vocabulary = `Reply with a single JSON object in a fenced code block:

` + "```json" + `
{"action": "<kind>", "details": { ... }}
` + "```" + `

Allowed kinds and their details:
- "remove_subject": {"subjects": ["Chemistry"]}
- "change_teacher": {"subject": "Physics", "teacherName": "Dr. Smooth"}
- "change_time": {"subject": "Mathematics", "allowedTimeSlots": ["9:00", "10:00", "11:00"]}
- "add_subject": {"subject": "Art", "day": "Monday", "timeSlot": "9:00", "className": "10A"}
- "no_change": {}

Days are Monday through Friday. Time slots are hourly from 9:00 to 17:00.
If the request cannot be mapped to an action, use "no_change".`

// Builder produces interpreter prompts. It is stateless; identical
// inputs yield identical prompts.
type Builder struct{}

// Build returns the prompt for the utterance against the schedule
// snapshot.
func (Builder) Build(utterance string, schedule model.Schedule) (string, error) {
	snapshot, err := json.Marshal(schedule)
	if err != nil {
		return "", fmt.Errorf("marshal schedule snapshot: %w", err)
	}
	var b strings.Builder
	b.WriteString("You are a timetable assistant. A user asked:\n\n")
	b.WriteString(utterance)
	b.WriteString("\n\nCurrent schedule:\n")
	b.Write(snapshot)
	b.WriteString("\n\n")
	b.WriteString(vocabulary)
	return b.String(), nil
}
