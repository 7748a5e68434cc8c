package metrics

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/timetable/core/metrics"
	"github.com/kilianp07/timetable/infra/logger"
)

// InfluxSink writes interpretation events to an InfluxDB instance using
// the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordInterpretation writes one interpretation event as line protocol.
func (s *InfluxSink) RecordInterpretation(res coremetrics.InterpretationResult) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("interpretation").
		AddTag("constraint_type", string(res.ConstraintType)).
		AddTag("action", string(res.ActionKind)).
		AddTag("fallback", strconv.FormatBool(res.Fallback)).
		AddTag("outcome", res.Outcome).
		AddTag("component", "interpret_engine").
		AddField("duration_ms", res.Duration.Seconds()*1000).
		AddField("schedule_items", res.ScheduleItems).
		SetTime(res.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying InfluxDB client.
func (s *InfluxSink) Close() { s.client.Close() }
