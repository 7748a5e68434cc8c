package metrics

import (
	"strconv"

	coremetrics "github.com/kilianp07/timetable/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records interpretation outcomes in Prometheus metrics.
type PromSink struct {
	interpretations *prometheus.CounterVec
	duration        *prometheus.HistogramVec
	items           prometheus.Gauge
}

// NewPromSink registers interpretation metrics on the default Prometheus
// registerer. The Prometheus server should be started separately using
// cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(cfg coremetrics.Config, reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	interpretations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "interpretations_total",
		Help: "Total number of interpreted constraints",
	}, []string{"constraint_type", "action", "fallback", "outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "interpretation_duration_seconds",
		Help:    "Time between utterance submission and applied schedule",
		Buckets: prometheus.DefBuckets,
	}, []string{"fallback"})
	items := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "schedule_items",
		Help: "Number of items in the schedule after the last interpretation",
	})

	if err := reg.Register(interpretations); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			interpretations = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(items); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			items = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &PromSink{interpretations: interpretations, duration: duration, items: items}, nil
}

// RecordInterpretation increments the counters for one interpreted
// constraint.
func (s *PromSink) RecordInterpretation(res coremetrics.InterpretationResult) error {
	fallback := strconv.FormatBool(res.Fallback)
	s.interpretations.WithLabelValues(string(res.ConstraintType), string(res.ActionKind), fallback, res.Outcome).Inc()
	s.duration.WithLabelValues(fallback).Observe(res.Duration.Seconds())
	if s.items != nil {
		s.items.Set(float64(res.ScheduleItems))
	}
	return nil
}
