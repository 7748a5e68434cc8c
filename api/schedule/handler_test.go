package schedule

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kilianp07/timetable/core/audit"
	"github.com/kilianp07/timetable/core/heuristic"
	"github.com/kilianp07/timetable/core/interpret"
	"github.com/kilianp07/timetable/core/model"
	"github.com/kilianp07/timetable/core/roster"
	"github.com/kilianp07/timetable/core/session"
	"github.com/kilianp07/timetable/core/transform"
	"github.com/kilianp07/timetable/infra/logger"
)

type fakeClient struct {
	reply      string
	configured bool
}

func (c *fakeClient) Generate(context.Context, string) (string, error) { return c.reply, nil }
func (c *fakeClient) Configured() bool                                 { return c.configured }

func newTestEngine(t *testing.T, client interpret.Client) *interpret.Engine {
	t.Helper()
	e, err := interpret.NewEngine(
		client,
		transform.New(roster.Seed()),
		heuristic.New(logger.NopLogger{}),
		nil,
		nil,
		logger.NopLogger{},
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return e
}

func seedStore() *session.Store {
	return session.New(model.Schedule{
		{ID: "1", Subject: "Chemistry", Day: model.Monday, TimeSlot: model.Slot9, ClassName: "10A"},
		{ID: "2", Subject: "Physics", Day: model.Monday, TimeSlot: model.Slot10, ClassName: "10A"},
	})
}

func TestInterpretHandler_AppliesSchedule(t *testing.T) {
	client := &fakeClient{
		configured: true,
		reply:      "```json\n{\"action\": \"remove_subject\", \"details\": {\"subjects\": [\"Chemistry\"]}}\n```",
	}
	store := seedStore()
	h := NewInterpretHandler(newTestEngine(t, client), store)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/interpret", strings.NewReader(`{"text": "No Chemistry classes"}`))
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	var res interpret.Result
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Fallback {
		t.Fatal("well-formed reply should not fall back")
	}
	if store.Schedule().HasSubject("Chemistry") {
		t.Fatal("session schedule not replaced")
	}
	if len(store.Constraints()) != 1 {
		t.Fatalf("constraint not recorded: %v", store.Constraints())
	}
	msgs := store.Messages()
	if len(msgs) != 2 || msgs[0].Sender != model.SenderUser || msgs[1].Sender != model.SenderSystem {
		t.Fatalf("unexpected transcript %#v", msgs)
	}
}

func TestInterpretHandler_MissingCredential(t *testing.T) {
	store := seedStore()
	h := NewInterpretHandler(newTestEngine(t, &fakeClient{}), store)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/interpret", strings.NewReader(`{"text": "No Chemistry classes"}`))
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status %d", rr.Code)
	}
	if !store.Schedule().HasSubject("Chemistry") {
		t.Fatal("schedule must stay untouched")
	}
	if len(store.Constraints()) != 0 {
		t.Fatal("no constraint should be recorded")
	}
}

func TestInterpretHandler_BadRequest(t *testing.T) {
	h := NewInterpretHandler(newTestEngine(t, &fakeClient{configured: true}), seedStore())
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("POST", "/api/interpret", strings.NewReader("{}")))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status %d", rr.Code)
	}
}

func TestInterpretHandler_MethodNotAllowed(t *testing.T) {
	h := NewInterpretHandler(newTestEngine(t, &fakeClient{configured: true}), seedStore())
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/api/interpret", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status %d", rr.Code)
	}
}

func TestScheduleHandler(t *testing.T) {
	h := NewScheduleHandler(seedStore())
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/api/schedule", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	var out model.Schedule
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("unexpected schedule %#v", out)
	}
}

func TestConstraintsHandler(t *testing.T) {
	store := seedStore()
	store.AddConstraint(model.Constraint{ID: "c1", Text: "No Chemistry", Type: model.ConstraintHard})
	h := NewConstraintsHandler(store)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/api/constraints", nil))
	var out []model.Constraint
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 1 || out[0].ID != "c1" {
		t.Fatalf("unexpected constraints %#v", out)
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("DELETE", "/api/constraints?id=c1", nil))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete status %d", rr.Code)
	}
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("DELETE", "/api/constraints?id=c1", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("missing delete status %d", rr.Code)
	}
}

func TestMessagesHandler_EmptyTranscript(t *testing.T) {
	h := NewMessagesHandler(seedStore())
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/api/messages", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	if strings.TrimSpace(rr.Body.String()) != "[]" {
		t.Fatalf("expected empty array, got %s", rr.Body.String())
	}
}

type memAudit struct{ recs []audit.Record }

func (m *memAudit) Append(_ context.Context, rec audit.Record) error {
	m.recs = append(m.recs, rec)
	return nil
}

func (m *memAudit) Records(_ context.Context, q audit.Query) ([]audit.Record, error) {
	var out []audit.Record
	for _, r := range m.recs {
		if q.ActionKind != "" && r.Action.Kind != q.ActionKind {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *memAudit) Close() error { return nil }

func TestAuditHandler(t *testing.T) {
	store := &memAudit{recs: []audit.Record{
		{Action: model.RemoveSubject("Chemistry"), Timestamp: time.Now().UTC()},
		{Action: model.NoChange(), Timestamp: time.Now().UTC()},
	}}
	h := NewAuditHandler(store, "tok")

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/api/audit", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated status %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/audit?action=remove_subject", nil)
	req.Header.Set("Authorization", "Bearer tok")
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	var out []audit.Record
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 1 || out[0].Action.Kind != model.ActionRemoveSubject {
		t.Fatalf("unexpected records %#v", out)
	}
}
