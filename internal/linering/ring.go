package linering

import (
	"errors"
	"fmt"
	"sync"
)

// Sentinel results for admission control and lookups. Rejections never
// mutate the ring.
var (
	ErrEmptyWrite    = errors.New("linering: empty write")
	ErrOversizeWrite = errors.New("linering: line exceeds half of pool capacity")
	ErrStaleLine     = errors.New("linering: id does not match the newest line")
	ErrEmpty         = errors.New("linering: no active lines")
	ErrNotFound      = errors.New("linering: line not found")
)

// EvictHook observes lines evicted by a write. The hook receives owned
// copies taken before the new write overwrote their storage, and is called
// outside the ring lock. Implementations must not block for long; the
// archiver enqueues and returns.
type EvictHook[T any] interface {
	OnEvict(lines []Line[T])
}

type noopEvictHook[T any] struct{}

func (noopEvictHook[T]) OnEvict([]Line[T]) {}

// Ring is a fixed-capacity circular buffer of variable-length lines.
type Ring[T any] struct {
	mu sync.Locker

	pool  []T      // element pool, circular address space of size n
	marks []marker // marker ring of m slots

	n int // pool capacity
	m int // marker slots

	// Slot indices into marks; -1 means empty. The active set is the ring
	// range [first..last].
	first int
	last  int

	textAppend bool
	hook       EvictHook[T]
	hasHook    bool
	notifyCh   chan struct{}
}

// Option configures a Ring at construction.
type Option[T any] func(*Ring[T])

// WithLocker injects the blocking mutual-exclusion primitive guarding all
// operations. The default is a sync.Mutex.
func WithLocker[T any](l sync.Locker) Option[T] {
	return func(r *Ring[T]) { r.mu = l }
}

// WithTextAppend enables terminator coalescing for AppendLast: the append
// starts on top of the line's current final element, so concatenating two
// terminated fragments does not leave a terminator mid-line. Only
// meaningful for element types carrying a terminator convention (text).
func WithTextAppend[T any]() Option[T] {
	return func(r *Ring[T]) { r.textAppend = true }
}

// WithEvictHook registers h to observe evicted lines.
func WithEvictHook[T any](h EvictHook[T]) Option[T] {
	return func(r *Ring[T]) { r.hook, r.hasHook = h, true }
}

// New allocates a ring with a pool of capacity elements and maxLines marker
// slots. Both are fixed for the ring's lifetime.
func New[T any](capacity, maxLines int, opts ...Option[T]) (*Ring[T], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("linering: capacity must be positive, got %d", capacity)
	}
	if maxLines <= 0 {
		return nil, fmt.Errorf("linering: maxLines must be positive, got %d", maxLines)
	}
	r := &Ring[T]{
		mu:       &sync.Mutex{},
		pool:     make([]T, capacity),
		marks:    make([]marker, maxLines),
		n:        capacity,
		m:        maxLines,
		first:    -1,
		last:     -1,
		hook:     noopEvictHook[T]{},
		notifyCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Cap returns the pool capacity in elements.
func (r *Ring[T]) Cap() int { return r.n }

// MaxLines returns the number of marker slots.
func (r *Ring[T]) MaxLines() int { return r.m }

// Len returns the number of active lines.
func (r *Ring[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lenLocked()
}

func (r *Ring[T]) lenLocked() int {
	if r.last < 0 {
		return 0
	}
	if r.first <= r.last {
		return r.last - r.first + 1
	}
	return r.m - r.first + r.last + 1
}

// nextSlot advances a marker-ring index by one, wrapping. nextSlot(-1) is 0,
// which seeds the first-ever write.
func (r *Ring[T]) nextSlot(i int) int { return (i + 1) % r.m }

// copyIn writes data into the pool starting at start, splitting across the
// wrap boundary when needed. A single line wraps at most once.
func (r *Ring[T]) copyIn(start int, data []T) {
	if start+len(data) <= r.n {
		copy(r.pool[start:], data)
		return
	}
	head := r.n - start
	copy(r.pool[start:], data[:head])
	copy(r.pool, data[head:])
}

// copyOut returns an owned defragmented copy of the region described by mk.
func (r *Ring[T]) copyOut(mk marker) []T {
	length := mk.length(r.n)
	out := make([]T, length)
	if mk.start <= mk.end {
		copy(out, r.pool[mk.start:mk.end+1])
		return out
	}
	head := r.n - mk.start
	copy(out, r.pool[mk.start:])
	copy(out[head:], r.pool[:mk.end+1])
	return out
}

// notifyLocked wakes WaitForWrite waiters after a committed write.
func (r *Ring[T]) notifyLocked() {
	close(r.notifyCh)
	r.notifyCh = make(chan struct{})
}
