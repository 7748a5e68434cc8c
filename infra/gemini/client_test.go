package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/timetable/infra/logger"
)

func newTestClient(endpoint string) *Client {
	return NewClient(Config{Endpoint: endpoint, APIKey: "test-key"}, logger.NopLogger{})
}

func TestGenerate_ReturnsCandidateText(t *testing.T) {
	var gotPath, gotKey string
	var gotBody generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"action\": \"no_change\"}"}]}}]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	text, err := c.Generate(context.Background(), "No Chemistry classes")
	require.NoError(t, err)
	assert.Equal(t, `{"action": "no_change"}`, text)
	assert.Equal(t, "/"+DefaultModel+":generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
	require.Len(t, gotBody.Contents, 1)
	require.Len(t, gotBody.Contents[0].Parts, 1)
	assert.Equal(t, "No Chemistry classes", gotBody.Contents[0].Parts[0].Text)
	assert.Zero(t, gotBody.GenerationConfig.Temperature)
}

func TestGenerate_NonSuccessStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Generate(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestGenerate_TransportErrorIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := newTestClient(srv.URL).Generate(context.Background(), "hello")
	require.Error(t, err)
}

// A 200 reply that does not carry the candidate shape is an empty
// string, not an error. The orchestrator treats it as any other
// unusable reply.
func TestGenerate_MalformedReplyIsEmptyText(t *testing.T) {
	for name, body := range map[string]string{
		"not json":      "<html>oops</html>",
		"no candidates": `{"candidates":[]}`,
		"empty parts":   `{"candidates":[{"content":{"parts":[]}}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer srv.Close()

			text, err := newTestClient(srv.URL).Generate(context.Background(), "hello")
			require.NoError(t, err)
			assert.Empty(t, text)
		})
	}
}

func TestConfigured(t *testing.T) {
	assert.False(t, NewClient(Config{}, logger.NopLogger{}).Configured())
	assert.True(t, NewClient(Config{APIKey: "k"}, logger.NopLogger{}).Configured())
}

func TestConfig_SetDefaults(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()
	assert.Equal(t, DefaultModel, cfg.Model)
	assert.Equal(t, 30, cfg.TimeoutSeconds)
	assert.True(t, strings.HasPrefix(cfg.Endpoint, "https://"))
}

func TestMockServer_RoundTrip(t *testing.T) {
	reg := prometheus.NewRegistry()
	mock := NewMockServerWithRegistry("", func(prompt string) string {
		assert.Contains(t, prompt, "No Chemistry")
		return "```json\n{\"action\": \"remove_subject\", \"details\": {\"subjects\": [\"Chemistry\"]}}\n```"
	}, reg)
	ts := httptest.NewServer(mock.routes())
	defer ts.Close()

	c := NewClient(Config{Endpoint: ts.URL, APIKey: "local"}, logger.NopLogger{})
	text, err := c.Generate(context.Background(), "No Chemistry classes")
	require.NoError(t, err)
	assert.Contains(t, text, "remove_subject")
}

func TestMockServer_RejectsNonGeneratePaths(t *testing.T) {
	mock := NewMockServerWithRegistry("", nil, prometheus.NewRegistry())
	ts := httptest.NewServer(mock.routes())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/somewhere-else", "application/json", strings.NewReader("{}"))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
