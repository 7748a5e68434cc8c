// Package heuristic infers actions from raw utterances when the
// interpreter is unreachable or its reply is unusable. Inference never
// fails; the worst case is a no_change action. Given identical inputs
// the same action is produced every time.
package heuristic

import (
	"regexp"
	"strings"

	"github.com/kilianp07/timetable/core/logger"
	"github.com/kilianp07/timetable/core/model"
)

var (
	negationRe    = regexp.MustCompile(`(?i)\bno\b|\bremove\b`)
	capitalizedRe = regexp.MustCompile(`\b[A-Z][A-Za-z]*\b`)
	teacherRe     = regexp.MustCompile(`(?i)\b([A-Za-z]+)\s+teacher'?s?\s+name\s+is\s+(.+)`)
)

// Engine applies keyword heuristics in a fixed precedence order.
type Engine struct {
	log logger.Logger
}

// New creates an Engine logging through the given logger.
func New(log logger.Logger) *Engine {
	return &Engine{log: log}
}

// Infer returns the best-effort action for the utterance against the
// schedule snapshot. Precedence: negated subjects, time-of-day
// restrictions, teacher renames, then a last-resort subject mention scan.
func (e *Engine) Infer(utterance string, schedule model.Schedule) model.Action {
	lower := strings.ToLower(utterance)
	negated := negationRe.MatchString(utterance)

	if negated {
		if subjects := e.negatedSubjects(utterance, schedule); len(subjects) > 0 {
			e.log.Debugf("heuristic: removing %v", subjects)
			return model.RemoveSubject(subjects...)
		}
	}

	if subject, slots, ok := e.timeRestriction(utterance, lower, schedule); ok {
		e.log.Debugf("heuristic: restricting %s to %d slots", subject, len(slots))
		return model.ChangeTime(subject, slots)
	}

	if subject, teacher, ok := e.teacherRename(utterance, schedule); ok {
		e.log.Debugf("heuristic: renaming %s teacher to %s", subject, teacher)
		return model.ChangeTeacher(subject, teacher)
	}

	// Last resort: a plain subject mention. A mention together with a
	// negation cue means removal.
	for _, subject := range schedule.Subjects() {
		if strings.Contains(lower, strings.ToLower(subject)) {
			if negated {
				e.log.Debugf("heuristic: mention scan removing %s", subject)
				return model.RemoveSubject(subject)
			}
			return model.NoChange()
		}
	}
	return model.NoChange()
}

// negatedSubjects collects capitalized tokens after each negation cue
// and resolves them against the schedule's subjects.
func (e *Engine) negatedSubjects(utterance string, schedule model.Schedule) []string {
	var out []string
	seen := map[string]bool{}
	for _, loc := range negationRe.FindAllStringIndex(utterance, -1) {
		rest := utterance[loc[1]:]
		for _, token := range capitalizedRe.FindAllString(rest, -1) {
			subject, ok := resolveSubject(token, schedule)
			if !ok {
				continue
			}
			key := strings.ToLower(subject)
			if !seen[key] {
				seen[key] = true
				out = append(out, subject)
			}
		}
	}
	return out
}

func (e *Engine) timeRestriction(utterance, lower string, schedule model.Schedule) (string, []model.TimeSlot, bool) {
	var slots []model.TimeSlot
	switch {
	case strings.Contains(lower, "morning"):
		slots = model.MorningSlots()
	case strings.Contains(lower, "afternoon"):
		slots = model.AfternoonSlots()
	default:
		return "", nil, false
	}
	for _, token := range capitalizedRe.FindAllString(utterance, -1) {
		if subject, ok := resolveSubject(token, schedule); ok {
			return subject, slots, true
		}
	}
	return "", nil, false
}

func (e *Engine) teacherRename(utterance string, schedule model.Schedule) (string, string, bool) {
	m := teacherRe.FindStringSubmatch(utterance)
	if m == nil {
		return "", "", false
	}
	subject := m[1]
	if resolved, ok := resolveSubject(subject, schedule); ok {
		subject = resolved
	}
	teacher := strings.TrimRight(strings.TrimSpace(m[2]), " .!?,;")
	if teacher == "" {
		return "", "", false
	}
	return subject, teacher, true
}

// resolveSubject matches a token against the schedule's subjects,
// ignoring case and tolerating truncation so "Math" resolves to
// "Mathematics". Schedule order decides ties.
func resolveSubject(token string, schedule model.Schedule) (string, bool) {
	lowerToken := strings.ToLower(token)
	for _, subject := range schedule.Subjects() {
		lowerSubject := strings.ToLower(subject)
		if lowerSubject == lowerToken {
			return subject, true
		}
		if len(lowerToken) >= 3 && strings.HasPrefix(lowerSubject, lowerToken) {
			return subject, true
		}
	}
	return "", false
}
