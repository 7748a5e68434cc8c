package schedule

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/kilianp07/timetable/core/audit"
	"github.com/kilianp07/timetable/core/model"
)

// NewAuditHandler returns an HTTP handler exposing the interpretation
// trail via GET /api/audit. Requests must include an Authorization
// header with "Bearer <token>" when token is non-empty.
func NewAuditHandler(store audit.Store, token string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if token != "" {
			auth := r.Header.Get("Authorization")
			if auth != "Bearer "+token {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}
		q := audit.Query{}
		if s := r.URL.Query().Get("start"); s != "" {
			if t, err := time.Parse(time.RFC3339, s); err == nil {
				q.Start = t
			}
		}
		if s := r.URL.Query().Get("end"); s != "" {
			if t, err := time.Parse(time.RFC3339, s); err == nil {
				q.End = t
			}
		}
		if a := r.URL.Query().Get("action"); a != "" {
			q.ActionKind = model.ActionKind(a)
		}
		if ct := r.URL.Query().Get("type"); ct != "" {
			q.Type = model.ConstraintType(ct)
		}
		records, err := store.Records(r.Context(), q)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if records == nil {
			records = []audit.Record{}
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(records); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}
