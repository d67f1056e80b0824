// Package binfieldmetrics exposes prometheus counters/histograms for
// schema parse/write activity, using promauto-based metrics registration.
package binfieldmetrics

import (
	"time"

	"github.com/aldas/go-binfield"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	recordsParsed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "binfield_records_parsed_total",
		Help: "The total number of records successfully parsed, by schema name.",
	}, []string{"schema"})

	parseFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "binfield_parse_failures_total",
		Help: "The total number of records that failed to parse, by schema name.",
	}, []string{"schema"})

	recordsWritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "binfield_records_written_total",
		Help: "The total number of records successfully written, by schema name.",
	}, []string{"schema"})

	writeFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "binfield_write_failures_total",
		Help: "The total number of records that failed to write, by schema name.",
	}, []string{"schema"})

	parseDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "binfield_parse_duration_seconds",
		Help:    "Time spent parsing one record, by schema name.",
		Buckets: prometheus.DefBuckets,
	}, []string{"schema"})
)

// Schema wraps a *binfield.Schema so every ParseBytes/WriteBytes call is
// instrumented. The wrapped schema is otherwise used exactly like a plain
// *binfield.Schema.
type Schema struct {
	*binfield.Schema
}

// Wrap instruments s. The collectors are registered once, label-keyed by
// schema name, at package init; wrapping two schemas with the same name
// just shares their counters/histogram rather than panicking.
func Wrap(s *binfield.Schema) *Schema {
	return &Schema{Schema: s}
}

func (s *Schema) ParseBytes(data []byte) (*binfield.Record, int, error) {
	start := time.Now()
	rec, n, err := s.Schema.ParseBytes(data)
	parseDuration.WithLabelValues(s.Name).Observe(time.Since(start).Seconds())
	if err != nil {
		parseFailures.WithLabelValues(s.Name).Inc()
		return rec, n, err
	}
	recordsParsed.WithLabelValues(s.Name).Inc()
	return rec, n, nil
}

func (s *Schema) WriteBytes(r *binfield.Record) ([]byte, error) {
	b, err := s.Schema.WriteBytes(r)
	if err != nil {
		writeFailures.WithLabelValues(s.Name).Inc()
		return b, err
	}
	recordsWritten.WithLabelValues(s.Name).Inc()
	return b, nil
}
