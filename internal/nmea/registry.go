package nmea

import (
	"fmt"
	"strings"
	"sync"
)

// Registry maps sentence type codes to layouts.
//
// Standard (non-proprietary) layouts are also reachable by their three
// letter sentence ID, so "GNRMC" resolves to the "GPRMC" layout. Codes with
// no layout resolve to the generic layout.
type Registry struct {
	mu    sync.RWMutex
	codes map[string]*Layout
	ids   map[string]*Layout
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{codes: map[string]*Layout{}, ids: map[string]*Layout{}}
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// DefaultRegistry returns the registry of built-in layouts.
func DefaultRegistry() *Registry {
	defaultOnce.Do(func() {
		r := NewRegistry()
		for _, l := range builtinLayouts() {
			if err := r.Register(l); err != nil {
				panic(err)
			}
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// Register adds a layout. Codes must be unique and non-empty, and every key
// in the layout must be unique.
func (r *Registry) Register(l *Layout) error {
	if l == nil {
		return fmt.Errorf("nmea: register: layout is nil")
	}
	code := strings.TrimSpace(l.Code)
	if code == "" {
		return fmt.Errorf("nmea: register: code is empty")
	}
	if code != l.Code || strings.ContainsAny(code, "$,*") {
		return fmt.Errorf("nmea: register %q: invalid code", l.Code)
	}
	seen := make(map[string]bool, len(l.Fields)+1)
	for _, f := range l.Fields {
		if f.Key == "" {
			return fmt.Errorf("nmea: register %s: field %q has empty key", code, f.Label)
		}
		if seen[f.Key] {
			return fmt.Errorf("nmea: register %s: duplicate key %q", code, f.Key)
		}
		seen[f.Key] = true
	}
	if l.List != nil && (l.List.Key == "" || seen[l.List.Key]) {
		return fmt.Errorf("nmea: register %s: invalid list key %q", code, l.List.Key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.codes[code]; ok {
		return fmt.Errorf("nmea: register %s: already registered", code)
	}
	r.codes[code] = l
	if id, ok := sentenceID(code); ok {
		if _, taken := r.ids[id]; !taken {
			r.ids[id] = l
		}
	}
	return nil
}

// Resolve returns the layout for code. It never fails: unknown codes get
// the generic layout.
func (r *Registry) Resolve(code string) *Layout {
	code = strings.TrimPrefix(strings.TrimSpace(code), "$")
	r.mu.RLock()
	defer r.mu.RUnlock()
	if l, ok := r.codes[code]; ok {
		return l
	}
	if id, ok := sentenceID(code); ok {
		if l, ok := r.ids[id]; ok {
			return l
		}
	}
	return genericLayout
}

// Codes returns the registered codes.
func (r *Registry) Codes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.codes))
	for c := range r.codes {
		out = append(out, c)
	}
	return out
}

// Parse resolves the type of raw and parses it into a record.
func (r *Registry) Parse(raw string) (Record, error) {
	return r.Resolve(typeCode(raw)).Parse(raw)
}

// Parse parses raw with the default registry.
func Parse(raw string) (Record, error) {
	return DefaultRegistry().Parse(raw)
}

// sentenceID returns the three letter sentence ID of a standard
// talker+sentence code. Proprietary codes start with 'P' and have none.
func sentenceID(code string) (string, bool) {
	if len(code) != 5 || code[0] == 'P' {
		return "", false
	}
	return code[2:], true
}

func typeCode(raw string) string {
	head := raw
	if i := strings.IndexByte(head, ','); i != -1 {
		head = head[:i]
	}
	if i := strings.IndexByte(head, '*'); i != -1 {
		head = head[:i]
	}
	return strings.TrimPrefix(strings.TrimSpace(head), "$")
}
