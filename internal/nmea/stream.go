package nmea

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	// DefaultChunkSize is how many bytes Read pulls from the source per call.
	DefaultChunkSize = 1024
	// DefaultMaxFragment bounds the held fragment when no '$' arrives.
	DefaultMaxFragment = 64 * 1024
)

// Option configures a Stream.
type Option func(*Stream)

// WithChunkSize sets the read size. Values <= 0 use DefaultChunkSize.
func WithChunkSize(n int) Option {
	return func(s *Stream) {
		if n > 0 {
			s.chunk = n
		}
	}
}

// WithSeparator sets a non-standard inter-sentence separator.
func WithSeparator(sep string) Option {
	return func(s *Stream) { s.splitter.Separator = sep }
}

// WithDropHook sets a callback for every candidate the stream discards.
func WithDropHook(fn func(candidate string, reason DropReason)) Option {
	return func(s *Stream) { s.splitter.OnDrop = fn }
}

// WithRegistry sets the registry Objects resolves types with.
func WithRegistry(r *Registry) Option {
	return func(s *Stream) {
		if r != nil {
			s.registry = r
		}
	}
}

// WithMaxFragment bounds the held fragment. Values <= 0 disable the bound.
func WithMaxFragment(n int) Option {
	return func(s *Stream) { s.maxFragment = n }
}

// Stream yields complete sentences from an io.Reader.
//
// Each Read pulls one chunk and keeps the text after the last '$' as the
// head of the next read, so callers only see sentences that were followed by
// another '$' or by the end of the stream. A Stream is not safe for
// concurrent use.
type Stream struct {
	r           io.Reader
	buf         []byte
	chunk       int
	maxFragment int
	splitter    Splitter
	registry    *Registry

	head   string
	done   bool
	framed bool
}

// NewStream returns a Stream reading from r.
func NewStream(r io.Reader, opts ...Option) *Stream {
	s := &Stream{
		r:           r,
		chunk:       DefaultChunkSize,
		maxFragment: DefaultMaxFragment,
		registry:    DefaultRegistry(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.buf = make([]byte, s.chunk)
	return s
}

// Read returns the next batch of complete sentence bodies. The batch may be
// empty while a sentence is still arriving. At end of stream the held
// fragment is flushed; after that Read returns nil, io.EOF.
func (s *Stream) Read() ([]string, error) {
	if s.done {
		return nil, io.EOF
	}
	n, err := s.r.Read(s.buf)
	data := s.head + string(s.buf[:n])
	s.head = ""

	if err != nil {
		if !errors.Is(err, io.EOF) {
			s.head = data
			return nil, fmt.Errorf("nmea: stream read: %w", err)
		}
		s.done = true
		data = s.skipLeading(data, true)
		if data == "" {
			return nil, io.EOF
		}
		return s.splitter.Split(data), nil
	}

	if data = s.skipLeading(data, false); !s.framed {
		s.hold(data)
		return []string{}, nil
	}
	cut := strings.LastIndexByte(data, '$')
	if cut == -1 {
		s.hold(data)
		return []string{}, nil
	}
	s.hold(data[cut:])
	return s.splitter.Split(data[:cut]), nil
}

// skipLeading drops the text in front of the stream's first '$'. Until one
// arrives data is returned unchanged for holding, unless the stream has
// ended.
func (s *Stream) skipLeading(data string, eof bool) string {
	if s.framed {
		return data
	}
	i := strings.IndexByte(data, '$')
	if i == -1 {
		if !eof {
			return data
		}
		i = len(data)
	} else {
		s.framed = true
	}
	if lead := s.splitter.trim(data[:i]); lead != "" {
		s.splitter.drop(lead, DropUnframed)
	}
	return data[i:]
}

func (s *Stream) hold(fragment string) {
	if s.maxFragment > 0 && len(fragment) > s.maxFragment {
		s.splitter.drop(fragment, DropOversize)
		return
	}
	s.head = fragment
}

// Strings is Read.
func (s *Stream) Strings() ([]string, error) {
	return s.Read()
}

// SplitString frames in-memory data with the stream's splitter settings,
// without touching the underlying reader or the held fragment.
func (s *Stream) SplitString(data string) []string {
	return s.splitter.Split(data)
}

// Objects reads the next batch and parses each sentence. The first parse
// error aborts the batch and is returned with the records parsed so far.
func (s *Stream) Objects() ([]Record, error) {
	raw, err := s.Read()
	if err != nil {
		return nil, err
	}
	return s.parseAll(raw)
}

func (s *Stream) parseAll(raw []string) ([]Record, error) {
	out := make([]Record, 0, len(raw))
	for _, r := range raw {
		rec, err := s.registry.Parse(r)
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// ReadAll drains the stream, returning every sentence body.
func (s *Stream) ReadAll() ([]string, error) {
	var out []string
	for {
		batch, err := s.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, batch...)
	}
}

// ParseString splits and parses in-memory data with the default registry.
func ParseString(data string, opts ...Option) ([]Record, error) {
	s := NewStream(strings.NewReader(""), opts...)
	return s.parseAll(s.SplitString(data))
}
