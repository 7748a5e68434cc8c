// Package parse extracts a structured action from the interpreter's raw
// text reply. Replies routinely wrap the JSON in prose or code fences;
// extraction is tolerant of the surroundings but strict about the action
// itself: a reply either yields a fully validated action or ErrParseFailure.
package parse

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"github.com/kilianp07/timetable/core/model"
)

// ErrParseFailure reports that no usable action could be extracted. The
// caller is expected to fall back to heuristic inference.
var ErrParseFailure = errors.New("parse: no usable action in reply")

var (
	jsonFenceRe = regexp.MustCompile("(?s)```json\\s*(.*?)```")
	anyFenceRe  = regexp.MustCompile("(?s)```[a-zA-Z]*\\s*(.*?)```")
)

// wireAction is the envelope the interpreter is asked to produce.
// Field names are exact; casing drift is not tolerated.
type wireAction struct {
	Action  string          `json:"action"`
	Details json.RawMessage `json:"details"`
}

// Action extracts and validates an action from the raw reply. Extraction
// is attempted in order: a json-tagged fence, any fence, the first
// balanced brace object anywhere in the text. The first candidate that
// decodes as JSON is used; anything missing or malformed after that
// yields ErrParseFailure, never a partially populated action.
func Action(raw string) (model.Action, error) {
	for _, candidate := range candidates(raw) {
		var w wireAction
		if err := json.Unmarshal([]byte(candidate), &w); err != nil {
			continue
		}
		return decode(w)
	}
	return model.Action{}, ErrParseFailure
}

func candidates(raw string) []string {
	var out []string
	for _, m := range jsonFenceRe.FindAllStringSubmatch(raw, -1) {
		out = append(out, m[1])
	}
	for _, m := range anyFenceRe.FindAllStringSubmatch(raw, -1) {
		out = append(out, m[1])
	}
	if obj, ok := braceObject(raw); ok {
		out = append(out, obj)
	}
	return out
}

// braceObject returns the first top-level {...} object in the text,
// tracking string literals so braces inside values do not unbalance it.
func braceObject(raw string) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false
	for i, r := range raw {
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}
		switch r {
		case '"':
			inString = true
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 && start >= 0 {
				return raw[start : i+1], true
			}
		}
	}
	return "", false
}

func decode(w wireAction) (model.Action, error) {
	kind := model.ActionKind(w.Action)
	if !kind.Known() {
		return model.Action{}, fmt.Errorf("%w: unknown action %q", ErrParseFailure, w.Action)
	}

	var action model.Action
	switch kind {
	case model.ActionRemoveSubject:
		var d struct {
			Subjects []string `json:"subjects"`
		}
		if err := details(w, &d); err != nil {
			return model.Action{}, err
		}
		action = model.RemoveSubject(d.Subjects...)
	case model.ActionChangeTeacher:
		var d struct {
			Subject     string `json:"subject"`
			TeacherName string `json:"teacherName"`
		}
		if err := details(w, &d); err != nil {
			return model.Action{}, err
		}
		action = model.ChangeTeacher(d.Subject, d.TeacherName)
	case model.ActionChangeTime:
		var d struct {
			Subject          string           `json:"subject"`
			AllowedTimeSlots []model.TimeSlot `json:"allowedTimeSlots"`
		}
		if err := details(w, &d); err != nil {
			return model.Action{}, err
		}
		action = model.ChangeTime(d.Subject, d.AllowedTimeSlots)
	case model.ActionAddSubject:
		var d struct {
			Subject   string         `json:"subject"`
			Day       model.Day      `json:"day"`
			TimeSlot  model.TimeSlot `json:"timeSlot"`
			ClassName string         `json:"className"`
		}
		if err := details(w, &d); err != nil {
			return model.Action{}, err
		}
		action = model.AddSubject(d.Subject, d.Day, d.TimeSlot, d.ClassName)
	case model.ActionNoChange:
		action = model.NoChange()
	}

	if err := action.Validate(); err != nil {
		return model.Action{}, fmt.Errorf("%w: %v", ErrParseFailure, err)
	}
	return action, nil
}

func details(w wireAction, dst any) error {
	if len(w.Details) == 0 {
		return fmt.Errorf("%w: action %q missing details", ErrParseFailure, w.Action)
	}
	if err := json.Unmarshal(w.Details, dst); err != nil {
		return fmt.Errorf("%w: action %q details: %v", ErrParseFailure, w.Action, err)
	}
	return nil
}
