// Package gemini implements the HTTP client for the generative
// interpreter endpoint.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/kilianp07/timetable/core/logger"
)

// DefaultModel is the generative model queried when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Config holds the interpreter endpoint settings.
type Config struct {
	Endpoint       string `json:"endpoint"`
	APIKey         string `json:"api_key"`
	Model          string `json:"model"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// SetDefaults fills in unset fields.
func (c *Config) SetDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "https://generativelanguage.googleapis.com/v1beta/models"
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
}

// Client sends prompts to the generative endpoint. The credential is
// carried as a query-string parameter, not a header.
type Client struct {
	cfg    Config
	client *http.Client
	log    logger.Logger
}

// NewClient creates a Client. The key may be empty; Configured reports
// whether one is set.
func NewClient(cfg Config, log logger.Logger) *Client {
	cfg.SetDefaults()
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		log:    log,
	}
}

// Configured reports whether an API key is available.
func (c *Client) Configured() bool { return c.cfg.APIKey != "" }

type generateRequest struct {
	Contents []content `json:"contents"`
	// Temperature zero keeps the interpreter deterministic for a given
	// prompt.
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content content `json:"content"`
}

// Generate posts the prompt and returns the first candidate's text.
// Transport trouble, timeouts and non-success statuses are errors; a
// reply body missing the expected shape yields an empty string so the
// caller treats it like any other unusable reply.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s:generateContent?key=%s",
		c.cfg.Endpoint, c.cfg.Model, url.QueryEscape(c.cfg.APIKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("unexpected status %d: %s", resp.StatusCode, msg)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.log.Warnf("undecodable interpreter reply: %v", err)
		return "", nil
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		c.log.Warnf("interpreter reply carries no candidate text")
		return "", nil
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}
