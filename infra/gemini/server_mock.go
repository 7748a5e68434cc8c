package gemini

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/timetable/infra/logger"
)

// ReplyFunc produces the mock's answer for one prompt.
type ReplyFunc func(prompt string) string

// MockServer exposes a local stand-in for the generative endpoint so the
// pipeline can be exercised without a credential or network access.
type MockServer struct {
	addr   string
	reply  ReplyFunc
	log    logger.Logger
	srv    *http.Server
	total  prometheus.Counter
	failed prometheus.Counter
}

// NewMockServer creates a mock server using the default Prometheus
// registerer. A nil reply function answers every prompt with a no-op
// action.
func NewMockServer(addr string, reply ReplyFunc) *MockServer {
	return NewMockServerWithRegistry(addr, reply, prometheus.DefaultRegisterer)
}

// NewMockServerWithRegistry creates a mock server and registers metrics
// on the provided registerer. If reg is nil the default registerer is
// used.
func NewMockServerWithRegistry(addr string, reply ReplyFunc, reg prometheus.Registerer) *MockServer {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if reply == nil {
		reply = func(string) string { return `{"action": "no_change"}` }
	}

	log := logger.New("gemini-mock")

	total := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "interpreter_mock_requests_total",
		Help: "Total prompts received by the interpreter mock",
	})
	failed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "interpreter_mock_requests_failed",
		Help: "Malformed prompts received by the interpreter mock",
	})

	if err := reg.Register(total); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if exist, ok := are.ExistingCollector.(prometheus.Counter); ok {
				total = exist
			} else {
				log.Errorf("existing collector for interpreter_mock_requests_total has wrong type %T", are.ExistingCollector)
			}
		}
	}
	if err := reg.Register(failed); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if exist, ok := are.ExistingCollector.(prometheus.Counter); ok {
				failed = exist
			} else {
				log.Errorf("existing collector for interpreter_mock_requests_failed has wrong type %T", are.ExistingCollector)
			}
		}
	}

	return &MockServer{
		addr:   addr,
		reply:  reply,
		log:    log,
		total:  total,
		failed: failed,
	}
}

func (s *MockServer) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("pong")); err != nil {
			s.log.Errorf("write pong: %v", err)
		}
	})
	mux.HandleFunc("/", s.handleGenerate)
	return mux
}

func (s *MockServer) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost || !strings.HasSuffix(r.URL.Path, ":generateContent") {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.failed.Inc()
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	var prompt string
	if len(req.Contents) > 0 && len(req.Contents[0].Parts) > 0 {
		prompt = req.Contents[0].Parts[0].Text
	}
	s.total.Inc()

	out := generateResponse{Candidates: []candidate{
		{Content: content{Parts: []part{{Text: s.reply(prompt)}}}},
	}}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		s.log.Errorf("encode reply: %v", err)
	}
}

// Addr returns the listening address once Start has been called.
func (s *MockServer) Addr() string { return s.addr }

// Start runs the HTTP server until the context is canceled.
func (s *MockServer) Start(ctx context.Context) error {
	mux := s.routes()
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.addr = ln.Addr().String()
	s.srv = &http.Server{Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("shutdown server: %v", err)
		}
		cancel()
	}()
	s.log.Infof("interpreter mock listening on %s", s.addr)
	err = s.srv.Serve(ln)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
