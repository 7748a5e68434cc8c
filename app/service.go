// Package app wires the configuration into a running service: the
// interpretation engine, the session store, the HTTP API and the
// observability sinks.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	apischedule "github.com/kilianp07/timetable/api/schedule"
	"github.com/kilianp07/timetable/config"
	"github.com/kilianp07/timetable/core/audit"
	"github.com/kilianp07/timetable/core/events"
	"github.com/kilianp07/timetable/core/heuristic"
	"github.com/kilianp07/timetable/core/interpret"
	coremetrics "github.com/kilianp07/timetable/core/metrics"
	"github.com/kilianp07/timetable/core/roster"
	"github.com/kilianp07/timetable/core/session"
	"github.com/kilianp07/timetable/core/transform"
	"github.com/kilianp07/timetable/infra/gemini"
	"github.com/kilianp07/timetable/infra/logger"
	"github.com/kilianp07/timetable/infra/metrics"
	"github.com/kilianp07/timetable/infra/mqtt"
	"github.com/kilianp07/timetable/internal/eventbus"
)

// Service orchestrates the interpretation engine and its surfaces.
type Service struct {
	Engine  *interpret.Engine
	Store   *session.Store
	bus     eventbus.EventBus
	log     logger.Logger
	auditDB audit.Store
	mqttPub mqtt.Publisher

	apiAddr     string
	apiToken    string
	promEnabled bool
	promPort    string
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	var sinks []coremetrics.MetricsSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sink := metrics.NewInfluxSinkWithFallback(cfg.Metrics.InfluxURL, cfg.Metrics.InfluxToken, cfg.Metrics.InfluxOrg, cfg.Metrics.InfluxBucket)
		sinks = append(sinks, sink)
	}
	var sink coremetrics.MetricsSink
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	bus := eventbus.New()
	directory := roster.Seed()
	client := gemini.NewClient(cfg.Interpreter, logger.New("gemini-client"))
	engine, err := interpret.NewEngine(
		client,
		transform.New(directory),
		heuristic.New(logger.New("heuristic")),
		sink,
		bus,
		logger.New("interpret"),
	)
	if err != nil {
		return nil, fmt.Errorf("interpret engine: %w", err)
	}

	svc := &Service{
		Engine:      engine,
		Store:       session.New(roster.SeedSchedule(directory)),
		bus:         bus,
		log:         logg,
		apiAddr:     cfg.API.Address,
		apiToken:    cfg.API.Token,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promPort:    cfg.Metrics.PrometheusPort,
	}

	if cfg.Audit.Enabled {
		store, err := audit.NewJSONLStore(cfg.Audit.Path)
		if err != nil {
			return nil, fmt.Errorf("audit store: %w", err)
		}
		engine.SetAuditStore(store)
		svc.auditDB = store
	}

	if cfg.MQTT.Enabled {
		pub, err := mqtt.NewPahoPublisher(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		svc.mqttPub = pub
	}

	return svc, nil
}

// Run starts the service and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	go s.watchBus()
	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	mux := http.NewServeMux()
	mux.Handle("/api/interpret", apischedule.NewInterpretHandler(s.Engine, s.Store))
	mux.Handle("/api/schedule", apischedule.NewScheduleHandler(s.Store))
	mux.Handle("/api/constraints", apischedule.NewConstraintsHandler(s.Store))
	mux.Handle("/api/messages", apischedule.NewMessagesHandler(s.Store))
	if s.auditDB != nil {
		mux.Handle("/api/audit", apischedule.NewAuditHandler(s.auditDB, s.apiToken))
	}

	srv := &http.Server{Addr: s.apiAddr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("shutdown api server: %v", err)
		}
		cancel()
	}()
	s.log.Infof("API listening on %s", s.apiAddr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// watchBus logs pipeline stages and announces applied schedules.
func (s *Service) watchBus() {
	sub := s.bus.Subscribe()
	for ev := range sub {
		switch e := ev.(type) {
		case events.StageEvent:
			if e.Err != nil {
				s.log.Warnf("pipeline %s: %v", e.State, e.Err)
			} else {
				s.log.Debugf("pipeline %s", e.State)
			}
		case events.ScheduleUpdated:
			s.log.Infof("schedule updated: %d items (fallback=%t)", e.Items, e.Fallback)
			if s.mqttPub != nil {
				if err := s.mqttPub.PublishScheduleUpdate(e.Schedule, e.Fallback); err != nil {
					s.log.Errorf("announce schedule update: %v", err)
				}
			}
		}
	}
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	if s.mqttPub != nil {
		s.mqttPub.Close()
	}
	if s.auditDB != nil {
		return s.auditDB.Close()
	}
	return nil
}
