package nmea

import (
	"fmt"
	"strings"
)

// Field names one positional data field: a human readable label and the
// key it is bound to.
type Field struct {
	Label string `json:"label"`
	Key   string `json:"key"`
}

// FieldMap is the ordered list of fields a sentence type binds.
type FieldMap []Field

// Keys returns the keys in order.
func (m FieldMap) Keys() []string {
	out := make([]string, len(m))
	for i, f := range m {
		out[i] = f.Key
	}
	return out
}

// Layout describes one sentence type.
//
// Fields are bound positionally. When List is set the layout is variable
// arity: Fields is a fixed prefix and every remaining data field is
// collected, in order, under List.Key.
type Layout struct {
	Code        string
	Description string
	Fields      FieldMap
	List        *Field

	wrap func(*Sentence) Record
}

// Generic reports whether l is the fallback layout used for unknown types.
func (l *Layout) Generic() bool {
	return l == nil || l == genericLayout
}

func (l *Layout) newRecord(s *Sentence) Record {
	if l == nil || l.wrap == nil {
		return s
	}
	return l.wrap(s)
}

// Record is a parsed sentence. *Sentence implements it for unknown types;
// known types return a variant (such as *GLL) that embeds *Sentence and adds
// typed accessors.
type Record interface {
	SentenceType() string
	RawText() string
	Checksum() (string, bool)
	HasChecksum() bool
	VerifyChecksum() (bool, error)
	Field(key string) (string, bool)
	Fields() []Value
	List() []string
	Parts() []string
	Layout() *Layout
}

// Value is a bound field with its value.
type Value struct {
	Field
	Value string `json:"value"`
}

// Sentence is the generic parsed form every variant is built on.
type Sentence struct {
	typ         string
	raw         string
	parts       []string
	checksum    string
	hasChecksum bool

	layout *Layout
	values map[string]string
	list   []string
}

// SentenceType returns the type code, e.g. "GPGLL", without the '$'.
func (s *Sentence) SentenceType() string {
	if s == nil {
		return ""
	}
	return s.typ
}

// RawText returns the sentence as it was handed to the parser.
func (s *Sentence) RawText() string { return s.raw }

// Checksum returns the checksum token and whether one was captured.
func (s *Sentence) Checksum() (string, bool) { return s.checksum, s.hasChecksum }

// Parts returns the type code followed by the data fields, checksum removed.
func (s *Sentence) Parts() []string {
	out := make([]string, len(s.parts))
	copy(out, s.parts)
	return out
}

// Layout returns the layout the sentence was bound with.
func (s *Sentence) Layout() *Layout { return s.layout }

// Field returns the value bound to key. ok is false when the sentence was
// too short to reach the field.
func (s *Sentence) Field(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Fields returns the bound fields in layout order, skipping unset ones.
func (s *Sentence) Fields() []Value {
	if s.layout == nil {
		return nil
	}
	out := make([]Value, 0, len(s.values))
	for _, f := range s.layout.Fields {
		if v, ok := s.values[f.Key]; ok {
			out = append(out, Value{Field: f, Value: v})
		}
	}
	return out
}

// List returns the variable-arity tail for list layouts (route waypoints,
// satellite blocks). It is nil for fixed layouts.
func (s *Sentence) List() []string {
	if s.list == nil {
		return nil
	}
	out := make([]string, len(s.list))
	copy(out, s.list)
	return out
}

// split tears raw apart into type code and data fields and captures the
// checksum token. A suffix after the last '*' that is not two hex digits is
// left on the last field.
func (s *Sentence) split(raw string) error {
	raw = strings.TrimSpace(raw)
	s.raw = raw
	parts := strings.Split(raw, ",")
	last := parts[len(parts)-1]
	if star := strings.LastIndexByte(last, '*'); star != -1 {
		if ck := last[star+1:]; isChecksumToken(ck) {
			parts[len(parts)-1] = last[:star]
			s.checksum = ck
			s.hasChecksum = true
		}
	}
	parts[0] = strings.TrimPrefix(parts[0], "$")
	if parts[0] == "" {
		return fmt.Errorf("nmea: parse %q: %w", raw, ErrEmptySentence)
	}
	s.typ = parts[0]
	s.parts = parts
	return nil
}

// bind assigns data fields to layout keys in order.
func (s *Sentence) bind() error {
	data := s.parts[1:]
	fields := s.layout.Fields
	s.values = make(map[string]string, len(fields))
	if s.layout.List != nil {
		n := len(fields)
		if len(data) < n {
			n = len(data)
		}
		for i := 0; i < n; i++ {
			s.values[fields[i].Key] = data[i]
		}
		s.list = append([]string{}, data[n:]...)
		return nil
	}
	if len(data) > len(fields) {
		return fmt.Errorf("nmea: %s has %d data fields, layout %q holds %d: %w",
			s.typ, len(data), s.layout.Code, len(fields), ErrContractViolation)
	}
	for i, v := range data {
		s.values[fields[i].Key] = v
	}
	return nil
}

// parseWith parses raw against layout l.
func parseWith(l *Layout, raw string) (*Sentence, error) {
	s := &Sentence{layout: l}
	if err := s.split(raw); err != nil {
		return nil, err
	}
	if err := s.bind(); err != nil {
		return nil, err
	}
	return s, nil
}

// Parse parses raw against the layout and returns the layout's record type.
func (l *Layout) Parse(raw string) (Record, error) {
	if l == nil {
		l = genericLayout
	}
	s, err := parseWith(l, raw)
	if err != nil {
		return nil, err
	}
	return l.newRecord(s), nil
}
