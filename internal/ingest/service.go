package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"nmeastream/internal/metrics"
	"nmeastream/internal/nmea"
)

// Logf is the package logger. Tests may replace it with SetLogger.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil mutes it.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

const (
	SourceFile  = "file"
	SourceStdin = "stdin"
	SourceTCP   = "tcp"

	// NMEA 0183 over TCP/UDP, per IEC 61162-450 convention.
	defaultTCPAddr = "127.0.0.1:10110"

	stdinCloseGrace = time.Second
)

// Config controls the ingest service.
//
// Source selects the input: "file" reads Path once, "stdin" reads standard
// input once, "tcp" connects to Addr and reconnects with backoff until the
// service is closed. When Source is empty it defaults to "file".
type Config struct {
	Enable bool

	Source string
	Path   string
	Addr   string

	ChunkSize   int
	MaxFragment int
	Separator   string

	// RecentLines bounds the tail of raw sentences kept for the status API.
	RecentLines int
}

// Sink receives every parsed record. *store.Run and *udp.Forwarder
// implement it.
type Sink interface {
	RecordSentence(ctx context.Context, rec nmea.Record, at time.Time) error
}

type Snapshot struct {
	Enabled bool   `json:"enabled"`
	Running bool   `json:"running"`
	Source  string `json:"source,omitempty"`
	Path    string `json:"path,omitempty"`
	Addr    string `json:"addr,omitempty"`

	Sentences       int            `json:"sentences"`
	ByType          map[string]int `json:"by_type,omitempty"`
	ChecksumOK      int            `json:"checksum_ok"`
	ChecksumBad     int            `json:"checksum_bad"`
	ChecksumMissing int            `json:"checksum_missing"`
	Dropped         int            `json:"dropped"`
	ParseErrors     int            `json:"parse_errors"`
	SinkErrors      int            `json:"sink_errors"`

	LastSentenceUTC string `json:"last_sentence_utc,omitempty"`
	LastError       string `json:"last_error,omitempty"`
}

// Option configures a Service.
type Option func(*Service)

func WithMetrics(m *metrics.Metrics) Option { return func(s *Service) { s.metrics = m } }

// WithSink adds a destination for parsed records. It may be given more than
// once; sinks are called in order.
func WithSink(sink Sink) Option {
	return func(s *Service) {
		if sink != nil {
			s.sinks = append(s.sinks, sink)
		}
	}
}

func WithRegistry(r *nmea.Registry) Option {
	return func(s *Service) {
		if r != nil {
			s.registry = r
		}
	}
}

// WithClock overrides time.Now for received-at stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

type Service struct {
	cfg      Config
	metrics  *metrics.Metrics
	sinks    []Sink
	registry *nmea.Registry
	now      func() time.Time
	recent   *recentRing

	cancel   context.CancelFunc
	wg       sync.WaitGroup
	done     chan struct{}
	doneOnce sync.Once

	last atomic.Value // Snapshot

	mu     sync.Mutex
	closer io.Closer
}

func New(cfg Config, opts ...Option) *Service {
	cfg.Source = strings.ToLower(strings.TrimSpace(cfg.Source))
	if cfg.Source == "" {
		cfg.Source = SourceFile
	}
	if cfg.RecentLines == 0 {
		cfg.RecentLines = 100
	}
	s := &Service{
		cfg:      cfg,
		registry: nmea.DefaultRegistry(),
		now:      time.Now,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.recent = newRecentRing(cfg.RecentLines)
	s.last.Store(Snapshot{Enabled: cfg.Enable, Source: cfg.Source, Path: cfg.Path, Addr: cfg.Addr})
	return s
}

// Start begins reading in the background. It returns an error if the
// source cannot be opened; a disabled service starts as already done.
func (s *Service) Start(ctx context.Context) error {
	if s == nil {
		return fmt.Errorf("ingest service is nil")
	}
	if !s.cfg.Enable {
		s.finish()
		return nil
	}
	if ctx == nil {
		return fmt.Errorf("ctx is nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return nil
	}

	switch s.cfg.Source {
	case SourceFile:
		return s.startFileLocked(ctx)
	case SourceStdin:
		in := os.Stdin
		// Closing stdin is what interrupts a blocked read.
		s.closer = in
		return s.startReaderLocked(ctx, in, "stdin")
	case SourceTCP:
		return s.startTCPLocked(ctx)
	default:
		return fmt.Errorf("unknown ingest source %q", s.cfg.Source)
	}
}

func (s *Service) startFileLocked(ctx context.Context) error {
	path := strings.TrimSpace(s.cfg.Path)
	if path == "" {
		s.setErrorLocked("ingest file path is empty")
		return fmt.Errorf("ingest file path is empty")
	}
	f, err := os.Open(path)
	if err != nil {
		s.setErrorLocked(fmt.Sprintf("ingest open failed path=%s: %v", path, err))
		return err
	}
	// Keep the file reference for Close().
	s.closer = f
	return s.startReaderLocked(ctx, f, "file path="+path)
}

// startReaderLocked consumes r once, to EOF or cancellation.
func (s *Service) startReaderLocked(ctx context.Context, r io.Reader, label string) error {
	childCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	// Publish the running snapshot before the reader can overwrite it.
	cur := s.Snapshot()
	cur.Running = true
	s.last.Store(cur)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.finish()
		if c, ok := r.(io.Closer); ok {
			defer func() { _ = c.Close() }()
		}

		Logf("ingest enabled source=%s", label)
		st := newState(s.Snapshot())
		err := s.consume(childCtx, r, st)
		if err != nil && childCtx.Err() == nil {
			st.lastErr = fmt.Sprintf("ingest read stopped: %v", err)
		}
		st.running = false
		s.last.Store(st.snapshot())
		Logf("ingest finished source=%s sentences=%d dropped=%d parse_errors=%d", label, st.sentences, st.dropped, st.parseErrors)
	}()
	return nil
}

func (s *Service) startTCPLocked(ctx context.Context) error {
	addr := strings.TrimSpace(s.cfg.Addr)
	if addr == "" {
		addr = defaultTCPAddr
	}

	childCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	cur := s.Snapshot()
	cur.Running = true
	cur.Addr = addr
	s.last.Store(cur)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.finish()

		Logf("ingest enabled source=tcp addr=%s", addr)
		st := newState(s.Snapshot())
		st.running = true
		backoff := 250 * time.Millisecond
		maxBackoff := 10 * time.Second

		for {
			select {
			case <-childCtx.Done():
				st.running = false
				s.last.Store(st.snapshot())
				return
			default:
			}

			conn, err := dialTCP(childCtx, addr)
			if err != nil {
				st.lastErr = fmt.Sprintf("ingest dial failed addr=%s: %v", addr, err)
				s.last.Store(st.snapshot())
				t := backoff
				if t > maxBackoff {
					t = maxBackoff
				}
				select {
				case <-childCtx.Done():
					continue
				case <-time.After(t):
				}
				if backoff < maxBackoff {
					backoff *= 2
				}
				continue
			}

			// Reset backoff after a successful connection.
			backoff = 250 * time.Millisecond

			s.mu.Lock()
			// Swap the closer so Close() can interrupt an active connection.
			s.closer = conn
			s.mu.Unlock()

			err = s.consume(childCtx, conn, st)
			_ = conn.Close()
			if err == nil {
				err = io.EOF
			}
			if childCtx.Err() == nil {
				st.lastErr = fmt.Sprintf("ingest read stopped addr=%s: %v", addr, err)
				s.last.Store(st.snapshot())
			}
			// Loop and reconnect.
		}
	}()
	return nil
}

func dialTCP(ctx context.Context, addr string) (net.Conn, error) {
	d := &net.Dialer{Timeout: 2 * time.Second}
	return d.DialContext(ctx, "tcp", addr)
}

// consume reads r through a Stream until EOF, error or cancellation.
// Sentences are parsed one at a time so a single bad sentence does not
// cost the rest of its batch.
func (s *Service) consume(ctx context.Context, r io.Reader, st *state) error {
	opts := []nmea.Option{
		nmea.WithChunkSize(s.cfg.ChunkSize),
		nmea.WithSeparator(s.cfg.Separator),
		nmea.WithRegistry(s.registry),
		nmea.WithDropHook(func(_ string, reason nmea.DropReason) {
			st.dropped++
			st.dirty = true
			st.lastErr = fmt.Sprintf("dropped candidate reason=%s", reason)
			s.metrics.ObserveDrop(reason)
		}),
	}
	// Zero keeps the stream's default bound.
	if s.cfg.MaxFragment > 0 {
		opts = append(opts, nmea.WithMaxFragment(s.cfg.MaxFragment))
	}
	stream := nmea.NewStream(r, opts...)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		batch, err := stream.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		for _, raw := range batch {
			s.handle(ctx, st, raw)
		}
		if len(batch) > 0 || st.dirty {
			st.dirty = false
			s.last.Store(st.snapshot())
		}
	}
}

func (s *Service) handle(ctx context.Context, st *state, raw string) {
	at := s.now().UTC()
	rec, err := s.registry.Parse(raw)
	if err != nil {
		// Avoid spamming on bad noise; just keep the last error.
		st.parseErrors++
		st.lastErr = err.Error()
		s.metrics.ObserveParseError(err)
		return
	}
	status := nmea.StatusOf(rec)
	st.observe(rec, status, at)
	s.metrics.ObserveRecord(rec, status)
	s.recent.add(raw)

	for _, sink := range s.sinks {
		if err := sink.RecordSentence(ctx, rec, at); err != nil {
			st.sinkErrors++
			st.lastErr = fmt.Sprintf("sink failed: %v", err)
			continue
		}
		s.metrics.ObserveStored()
	}
}

// Done is closed once the reader goroutine has exited, or immediately
// after Start when the service is disabled.
func (s *Service) Done() <-chan struct{} {
	return s.done
}

func (s *Service) finish() {
	s.doneOnce.Do(func() { close(s.done) })
}

func (s *Service) Close() {
	if s == nil {
		return
	}
	s.mu.Lock()
	cancel := s.cancel
	closer := s.closer
	s.cancel = nil
	s.closer = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if closer != nil {
		_ = closer.Close()
	}
	if cancel != nil && s.cfg.Source == SourceStdin {
		// A read on a terminal in blocking mode may ignore Close.
		select {
		case <-s.done:
		case <-time.After(stdinCloseGrace):
			Logf("ingest stdin read still blocked after close; not waiting")
		}
		return
	}
	s.wg.Wait()
}

func (s *Service) Snapshot() Snapshot {
	if s == nil {
		return Snapshot{}
	}
	v := s.last.Load()
	if v == nil {
		return Snapshot{}
	}
	return v.(Snapshot)
}

// Recent returns the most recent raw sentences, oldest first.
func (s *Service) Recent() []string {
	if s == nil {
		return nil
	}
	return s.recent.lines()
}

func (s *Service) setErrorLocked(msg string) {
	cur := s.Snapshot()
	cur.LastError = msg
	s.last.Store(cur)
}
