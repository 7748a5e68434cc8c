package metrics

import coremetrics "github.com/kilianp07/timetable/core/metrics"

// MultiSink fanouts interpretation records to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordInterpretation forwards the record to all sinks, returning the
// first error encountered.
func (m *MultiSink) RecordInterpretation(res coremetrics.InterpretationResult) error {
	for _, s := range m.Sinks {
		if err := s.RecordInterpretation(res); err != nil {
			return err
		}
	}
	return nil
}
