// Package interpret sequences one utterance through the pipeline:
// classification, the interpreter call, parsing, heuristic fallback and
// the schedule transformation. The interpreter being unreachable is not
// a failure; only a missing credential is.
package interpret

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/kilianp07/timetable/core/audit"
	"github.com/kilianp07/timetable/core/classify"
	"github.com/kilianp07/timetable/core/events"
	"github.com/kilianp07/timetable/core/heuristic"
	"github.com/kilianp07/timetable/core/logger"
	"github.com/kilianp07/timetable/core/metrics"
	"github.com/kilianp07/timetable/core/model"
	"github.com/kilianp07/timetable/core/parse"
	"github.com/kilianp07/timetable/core/prompt"
	"github.com/kilianp07/timetable/core/transform"
	"github.com/kilianp07/timetable/internal/eventbus"
)

// State tracks one utterance through the pipeline.
type State int

const (
	StateIdle State = iota
	StateClassifying
	StateInterpreterPending
	StateFallbackOnly
	StateParsed
	StateParseFailed
	StateApplying
	StateDone
	StateFailed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateClassifying:
		return "classifying"
	case StateInterpreterPending:
		return "interpreter_pending"
	case StateFallbackOnly:
		return "fallback_only"
	case StateParsed:
		return "parsed"
	case StateParseFailed:
		return "parse_failed"
	case StateApplying:
		return "applying"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Client calls the external generative interpreter.
type Client interface {
	// Generate sends the prompt and returns the raw reply text. A
	// transport error, timeout or non-success status is returned as an
	// error; a malformed reply body is an empty string, not an error.
	Generate(ctx context.Context, prompt string) (string, error)
	// Configured reports whether a credential is available.
	Configured() bool
}

// Result is the outcome of one interpreted utterance.
type Result struct {
	Schedule    model.Schedule   `json:"schedule"`
	Constraint  model.Constraint `json:"constraint"`
	Action      model.Action     `json:"action"`
	Explanation string           `json:"explanation"`
	Fallback    bool             `json:"fallback"`
}

// Engine is the orchestrator. The schedule passed to Interpret is
// treated as an immutable snapshot; the result carries a fresh value.
type Engine struct {
	client      Client
	transformer *transform.Transformer
	heuristics  *heuristic.Engine
	builder     prompt.Builder
	sink        metrics.MetricsSink
	bus         eventbus.EventBus
	log         logger.Logger

	mu    sync.Mutex
	busy  bool
	store audit.Store
}

// NewEngine creates an Engine. The client may be nil when no credential
// is configured; sink and bus are optional.
func NewEngine(client Client, tr *transform.Transformer, h *heuristic.Engine, sink metrics.MetricsSink, bus eventbus.EventBus, log logger.Logger) (*Engine, error) {
	if tr == nil || h == nil || log == nil {
		return nil, fmt.Errorf("interpret: nil parameter provided to NewEngine")
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Engine{
		client:      client,
		transformer: tr,
		heuristics:  h,
		sink:        sink,
		bus:         bus,
		log:         log,
	}, nil
}

// SetAuditStore configures the store used to persist interpretation
// records.
func (e *Engine) SetAuditStore(store audit.Store) {
	e.mu.Lock()
	e.store = store
	e.mu.Unlock()
}

// Interpret runs the full pipeline for one utterance and returns the
// resulting schedule with a human-readable explanation. It degrades to
// heuristic inference on any interpreter trouble and fails only when no
// credential is configured or another utterance is in flight.
func (e *Engine) Interpret(ctx context.Context, utterance string, schedule model.Schedule) (*Result, error) {
	if err := e.acquire(); err != nil {
		return nil, err
	}
	defer e.release()
	start := time.Now()

	e.publish(StateClassifying, utterance, nil)
	constraint := classify.New(utterance)

	if e.client == nil || !e.client.Configured() {
		e.publish(StateFailed, utterance, ErrMissingCredential)
		e.record(constraint, model.NoChange(), false, "failed", start, len(schedule))
		return nil, ErrMissingCredential
	}

	action, fallback := e.resolveAction(ctx, utterance, schedule)

	e.publish(StateApplying, utterance, nil)
	next := e.transformer.Apply(schedule, action)

	e.publish(StateDone, utterance, nil)
	if e.bus != nil {
		e.bus.Publish(events.ScheduleUpdated{Schedule: next, Items: len(next), Fallback: fallback})
	}
	e.record(constraint, action, fallback, "done", start, len(next))
	e.appendAudit(ctx, constraint, action, fallback)

	return &Result{
		Schedule:    next,
		Constraint:  constraint,
		Action:      action,
		Explanation: describe(action, fallback),
		Fallback:    fallback,
	}, nil
}

// resolveAction obtains an action from the interpreter, falling back to
// heuristic inference on transport errors or unusable replies.
func (e *Engine) resolveAction(ctx context.Context, utterance string, schedule model.Schedule) (model.Action, bool) {
	p, err := e.builder.Build(utterance, schedule)
	if err != nil {
		e.log.Errorf("prompt build failed: %v", err)
		e.publish(StateFallbackOnly, utterance, err)
		return e.heuristics.Infer(utterance, schedule), true
	}

	e.publish(StateInterpreterPending, utterance, nil)
	reply, err := e.client.Generate(ctx, p)
	if err != nil {
		e.log.Warnf("interpreter unreachable, using heuristics: %v", err)
		e.publish(StateFallbackOnly, utterance, err)
		return e.heuristics.Infer(utterance, schedule), true
	}

	action, err := parse.Action(reply)
	if err != nil {
		e.log.Warnf("unusable interpreter reply, using heuristics: %v", err)
		e.publish(StateParseFailed, utterance, err)
		return e.heuristics.Infer(utterance, schedule), true
	}
	e.publish(StateParsed, utterance, nil)
	return action, false
}

func (e *Engine) acquire() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.busy {
		return ErrBusy
	}
	e.busy = true
	return nil
}

func (e *Engine) release() {
	e.mu.Lock()
	e.busy = false
	e.mu.Unlock()
}

func (e *Engine) publish(s State, utterance string, err error) {
	if e.bus == nil {
		return
	}
	e.bus.Publish(events.StageEvent{State: s.String(), Utterance: utterance, Err: err})
}

func (e *Engine) record(c model.Constraint, a model.Action, fallback bool, outcome string, start time.Time, items int) {
	res := metrics.InterpretationResult{
		ConstraintType: c.Type,
		ActionKind:     a.Kind,
		Fallback:       fallback,
		Outcome:        outcome,
		Duration:       time.Since(start),
		ScheduleItems:  items,
		Time:           time.Now().UTC(),
	}
	if err := e.sink.RecordInterpretation(res); err != nil {
		e.log.Errorf("record interpretation: %v", err)
	}
}

func (e *Engine) appendAudit(ctx context.Context, c model.Constraint, a model.Action, fallback bool) {
	e.mu.Lock()
	store := e.store
	e.mu.Unlock()
	if store == nil {
		return
	}
	rec := audit.Record{Constraint: c, Action: a, Fallback: fallback, Timestamp: time.Now().UTC()}
	if err := store.Append(ctx, rec); err != nil {
		e.log.Errorf("append audit record: %v", err)
	}
}

// describe renders the best-effort explanation shown to the user.
func describe(a model.Action, fallback bool) string {
	var msg string
	switch a.Kind {
	case model.ActionRemoveSubject:
		msg = fmt.Sprintf("Removed every %s lesson from the timetable.", strings.Join(a.Subjects, " and "))
	case model.ActionChangeTeacher:
		msg = fmt.Sprintf("Assigned %s to every %s lesson.", a.TeacherName, a.Subject)
	case model.ActionChangeTime:
		slots := make([]string, len(a.AllowedTimeSlots))
		for i, s := range a.AllowedTimeSlots {
			slots[i] = string(s)
		}
		msg = fmt.Sprintf("Kept %s only at %s.", a.Subject, strings.Join(slots, ", "))
	case model.ActionAddSubject:
		msg = fmt.Sprintf("Added a %s lesson for class %s.", a.Subject, a.ClassName)
	default:
		msg = "I could not map that to a schedule change, so the timetable is unchanged."
	}
	if fallback {
		msg += " (interpreted locally)"
	}
	return msg
}
