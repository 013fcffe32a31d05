package ingest

import (
	"time"

	"nmeastream/internal/nmea"
)

// state is owned by the reader goroutine; snapshot copies it out.
type state struct {
	base Snapshot

	running         bool
	sentences       int
	byType          map[string]int
	checksumOK      int
	checksumBad     int
	checksumMissing int
	dropped         int
	parseErrors     int
	sinkErrors      int
	lastSentence    time.Time
	lastErr         string

	// dirty marks changes (drops, errors) not tied to a returned sentence.
	dirty bool
}

func newState(base Snapshot) *state {
	return &state{base: base, running: true, byType: map[string]int{}}
}

func (st *state) observe(rec nmea.Record, status nmea.ChecksumStatus, at time.Time) {
	st.sentences++
	st.byType[rec.SentenceType()]++
	switch status {
	case nmea.ChecksumOK:
		st.checksumOK++
	case nmea.ChecksumBad:
		st.checksumBad++
	default:
		st.checksumMissing++
	}
	st.lastSentence = at
}

func (st *state) snapshot() Snapshot {
	out := st.base
	out.Running = st.running
	out.Sentences = st.sentences
	out.ChecksumOK = st.checksumOK
	out.ChecksumBad = st.checksumBad
	out.ChecksumMissing = st.checksumMissing
	out.Dropped = st.dropped
	out.ParseErrors = st.parseErrors
	out.SinkErrors = st.sinkErrors
	out.LastError = st.lastErr
	if len(st.byType) > 0 {
		out.ByType = make(map[string]int, len(st.byType))
		for k, v := range st.byType {
			out.ByType[k] = v
		}
	}
	if !st.lastSentence.IsZero() {
		out.LastSentenceUTC = st.lastSentence.UTC().Format(time.RFC3339Nano)
	}
	return out
}
