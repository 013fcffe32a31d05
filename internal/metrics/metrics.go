// Package metrics exposes ingest counters to Prometheus.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"nmeastream/internal/nmea"
)

// Metrics holds the ingest counters. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	parsed      *prometheus.CounterVec
	dropped     *prometheus.CounterVec
	checksum    *prometheus.CounterVec
	parseErrors *prometheus.CounterVec
	stored      prometheus.Counter
}

// New creates the counters and registers them on reg. A nil reg uses
// prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		parsed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nmea_sentences_parsed_total",
			Help: "Sentences parsed, by sentence type.",
		}, []string{"type"}),
		dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nmea_sentences_dropped_total",
			Help: "Candidates discarded by the framer, by reason.",
		}, []string{"reason"}),
		checksum: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nmea_checksum_total",
			Help: "Checksum verification results (ok, bad, missing).",
		}, []string{"result"}),
		parseErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nmea_parse_errors_total",
			Help: "Sentences that failed to parse, by kind.",
		}, []string{"kind"}),
		stored: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nmea_sentences_stored_total",
			Help: "Sentences delivered to a sink (store or UDP forward).",
		}),
	}
	reg.MustRegister(m.parsed, m.dropped, m.checksum, m.parseErrors, m.stored)
	return m
}

// ObserveRecord counts a parsed record and its checksum result.
func (m *Metrics) ObserveRecord(rec nmea.Record, status nmea.ChecksumStatus) {
	if m == nil || rec == nil {
		return
	}
	m.parsed.WithLabelValues(rec.SentenceType()).Inc()
	m.checksum.WithLabelValues(string(status)).Inc()
}

// ObserveDrop counts a framer drop.
func (m *Metrics) ObserveDrop(reason nmea.DropReason) {
	if m == nil {
		return
	}
	m.dropped.WithLabelValues(string(reason)).Inc()
}

// ObserveParseError counts a failed parse.
func (m *Metrics) ObserveParseError(err error) {
	if m == nil || err == nil {
		return
	}
	m.parseErrors.WithLabelValues(ErrorKind(err)).Inc()
}

// ObserveStored counts one successful sink delivery.
func (m *Metrics) ObserveStored() {
	if m == nil {
		return
	}
	m.stored.Inc()
}

// ErrorKind maps a parse error to its metric label.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, nmea.ErrContractViolation):
		return "contract_violation"
	case errors.Is(err, nmea.ErrEmptySentence):
		return "empty"
	default:
		return "other"
	}
}
