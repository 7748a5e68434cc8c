// Package classify labels utterances as hard or soft constraints.
// The label is advisory metadata kept on the constraint record; it does
// not change how the resulting action is applied.
package classify

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/timetable/core/model"
)

// hardKeywords mark an utterance as a hard constraint when present.
var hardKeywords = []string{"must", "always", "never", "should not"}

// Type returns the constraint type for the utterance. Total: every
// input maps to exactly one of hard or soft.
func Type(text string) model.ConstraintType {
	lower := strings.ToLower(text)
	for _, kw := range hardKeywords {
		if strings.Contains(lower, kw) {
			return model.ConstraintHard
		}
	}
	return model.ConstraintSoft
}

// New builds the constraint record for an utterance.
func New(text string) model.Constraint {
	return model.Constraint{
		ID:        uuid.NewString(),
		Text:      text,
		Type:      Type(text),
		Timestamp: time.Now().UTC(),
	}
}
