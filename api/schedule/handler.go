// Package schedule exposes the interpretation pipeline and the session
// state over HTTP.
package schedule

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kilianp07/timetable/core/interpret"
	"github.com/kilianp07/timetable/core/model"
	"github.com/kilianp07/timetable/core/session"
)

type interpretRequest struct {
	Text string `json:"text"`
}

// NewInterpretHandler returns an HTTP handler accepting an utterance via
// POST /api/interpret. On success the session schedule is replaced and
// the interpretation result returned.
func NewInterpretHandler(engine *interpret.Engine, store *session.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req interpretRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		store.AddMessage(model.SenderUser, req.Text)

		res, err := engine.Interpret(r.Context(), req.Text, store.Schedule())
		switch {
		case errors.Is(err, interpret.ErrMissingCredential):
			store.AddMessage(model.SenderSystem, "No interpreter credential is configured.")
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		case errors.Is(err, interpret.ErrBusy):
			http.Error(w, err.Error(), http.StatusConflict)
			return
		case err != nil:
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		store.SetSchedule(res.Schedule)
		store.AddConstraint(res.Constraint)
		store.AddMessage(model.SenderSystem, res.Explanation)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(res); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

// NewScheduleHandler returns an HTTP handler exposing the current
// schedule via GET /api/schedule.
func NewScheduleHandler(store *session.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(store.Schedule()); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

// NewConstraintsHandler returns an HTTP handler exposing accepted
// constraints via GET /api/constraints and removal via DELETE
// /api/constraints?id=<id>.
func NewConstraintsHandler(store *session.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			constraints := store.Constraints()
			if constraints == nil {
				constraints = []model.Constraint{}
			}
			if err := json.NewEncoder(w).Encode(constraints); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		case http.MethodDelete:
			id := r.URL.Query().Get("id")
			if id == "" {
				http.Error(w, "id is required", http.StatusBadRequest)
				return
			}
			if !store.RemoveConstraint(id) {
				http.Error(w, "constraint not found", http.StatusNotFound)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
}

// NewMessagesHandler returns an HTTP handler exposing the session
// transcript via GET /api/messages.
func NewMessagesHandler(store *session.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		messages := store.Messages()
		if messages == nil {
			messages = []model.Message{}
		}
		if err := json.NewEncoder(w).Encode(messages); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}
