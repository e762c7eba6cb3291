package events

import "sync"

// DefaultRingSize is the default ring buffer capacity.
const DefaultRingSize = 64

// RingBuffer keeps the most recent events, overwriting the oldest once full.
// Safe for concurrent use. A nil *RingBuffer discards pushes and reads empty.
type RingBuffer struct {
	mu     sync.Mutex
	slots  []Event
	pushed int // total pushes; the next write goes to pushed % len(slots)
}

// NewRingBuffer creates a ring buffer holding size events.
func NewRingBuffer(size int) *RingBuffer {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &RingBuffer{slots: make([]Event, size)}
}

// Push records e.
func (r *RingBuffer) Push(e Event) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.slots[r.pushed%len(r.slots)] = e
	r.pushed++
	r.mu.Unlock()
}

// Snapshot returns every buffered event, oldest first.
func (r *RingBuffer) Snapshot() []Event {
	if r == nil {
		return nil
	}
	return r.Last(len(r.slots))
}

// Last returns up to n of the most recent events, oldest first.
func (r *RingBuffer) Last(n int) []Event {
	if r == nil || n <= 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastLocked(n)
}

func (r *RingBuffer) lastLocked(n int) []Event {
	n = min(n, r.held())
	if n == 0 {
		return nil
	}
	out := make([]Event, n)
	first := r.pushed - n
	for i := range out {
		out[i] = r.slots[(first+i)%len(r.slots)]
	}
	return out
}

func (r *RingBuffer) held() int {
	return min(r.pushed, len(r.slots))
}

// Len returns the number of buffered events.
func (r *RingBuffer) Len() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.held()
}

// Cap returns the buffer capacity.
func (r *RingBuffer) Cap() int {
	if r == nil {
		return 0
	}
	return len(r.slots)
}

// Stats counts buffered events by Kind.
func (r *RingBuffer) Stats() map[Kind]int {
	counts := make(map[Kind]int)
	if r == nil {
		return counts
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.lastLocked(len(r.slots)) {
		counts[e.Kind]++
	}
	return counts
}
