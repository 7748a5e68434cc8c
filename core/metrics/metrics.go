// Package metrics defines the observability contract for the
// interpretation pipeline. Sinks live in infra/metrics.
package metrics

import (
	"time"

	"github.com/kilianp07/timetable/core/model"
)

// InterpretationResult captures one pipeline run.
type InterpretationResult struct {
	ConstraintType model.ConstraintType
	ActionKind     model.ActionKind
	Fallback       bool
	Outcome        string // "done" or "failed"
	Duration       time.Duration
	ScheduleItems  int
	Time           time.Time
}

// MetricsSink records interpretation outcomes for observability purposes.
type MetricsSink interface {
	RecordInterpretation(res InterpretationResult) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordInterpretation(InterpretationResult) error { return nil }

// Config defines settings for metrics sinks.
type Config struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusPort    string `json:"prometheus_port"`
	InfluxEnabled     bool   `json:"influx_enabled"`
	InfluxURL         string `json:"influx_url"`
	InfluxToken       string `json:"influx_token"`
	InfluxOrg         string `json:"influx_org"`
	InfluxBucket      string `json:"influx_bucket"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.PrometheusPort == "" {
		c.PrometheusPort = ":9090"
	}
}
