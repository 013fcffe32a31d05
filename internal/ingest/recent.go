package ingest

import "sync"

// maxRecentBytes caps one stored sentence; NMEA 0183 allows 82 characters,
// proprietary sentences run longer.
const maxRecentBytes = 1024

// recentRing holds the last n raw sentences for the status API.
type recentRing struct {
	mu    sync.Mutex
	buf   []string
	next  int
	total int
}

func newRecentRing(n int) *recentRing {
	if n < 0 {
		n = 0
	}
	return &recentRing{buf: make([]string, n)}
}

func (r *recentRing) add(raw string) {
	if r == nil || len(r.buf) == 0 {
		return
	}
	if len(raw) > maxRecentBytes {
		raw = raw[:maxRecentBytes]
	}
	r.mu.Lock()
	r.buf[r.next] = raw
	r.next = (r.next + 1) % len(r.buf)
	r.total++
	r.mu.Unlock()
}

// lines returns the held sentences, oldest first.
func (r *recentRing) lines() []string {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	n := r.total
	if n > len(r.buf) {
		n = len(r.buf)
	}
	out := make([]string, 0, n)
	start := (r.next - n + len(r.buf)) % max(len(r.buf), 1)
	for i := 0; i < n; i++ {
		out = append(out, r.buf[(start+i)%len(r.buf)])
	}
	return out
}
