package archive

import (
	"context"
	"sync"
	"time"

	"github.com/rzbill/flexbuf/internal/linering"
	"github.com/rzbill/flexbuf/internal/metrics"
	logpkg "github.com/rzbill/flexbuf/pkg/log"
)

// Archiver implements linering.EvictHook[byte]: evicted lines are queued
// and persisted by one background goroutine, keeping the hook call cheap
// while the ring lock's caller is waiting.
type Archiver struct {
	store   *Store
	logger  logpkg.Logger
	metrics *metrics.Metrics

	mu     sync.Mutex
	closed bool
	ch     chan []linering.Line[byte]
	done   chan struct{}
}

// Options tunes the Archiver.
type Options struct {
	// QueueDepth bounds the pending eviction batches. When the queue is
	// full new batches are dropped (and counted), never blocked on.
	QueueDepth int
	// FlushTimeout bounds each Pebble commit.
	FlushTimeout time.Duration
}

// NewArchiver starts the drain goroutine. Close releases it.
func NewArchiver(store *Store, logger logpkg.Logger, m *metrics.Metrics, opts Options) *Archiver {
	if opts.QueueDepth <= 0 {
		opts.QueueDepth = 256
	}
	if opts.FlushTimeout <= 0 {
		opts.FlushTimeout = 5 * time.Second
	}
	a := &Archiver{
		store:   store,
		logger:  logger.With(logpkg.Component("archive")),
		metrics: m,
		ch:      make(chan []linering.Line[byte], opts.QueueDepth),
		done:    make(chan struct{}),
	}
	go a.run(opts.FlushTimeout)
	return a
}

// OnEvict enqueues the batch without blocking the ring. Batches arriving
// after Close, or while the queue is full, are dropped and counted.
func (a *Archiver) OnEvict(lines []linering.Line[byte]) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.metrics.LinesEvicted.Add(float64(len(lines)))
	if a.closed {
		return
	}
	select {
	case a.ch <- lines:
	default:
		a.metrics.ArchiveFailures.Inc()
		a.logger.Warn("archive queue full, dropping evicted lines",
			logpkg.Int("lines", len(lines)))
	}
}

func (a *Archiver) run(flushTimeout time.Duration) {
	defer close(a.done)
	for lines := range a.ch {
		start := time.Now()
		ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
		err := a.store.PutBatch(ctx, lines)
		cancel()
		if err != nil {
			a.metrics.ArchiveFailures.Inc()
			a.logger.Error("archive flush failed", logpkg.Err(err),
				logpkg.Int("lines", len(lines)))
			continue
		}
		a.metrics.ArchiveFlush.Observe(time.Since(start).Seconds())
		a.metrics.LinesArchived.Add(float64(len(lines)))
	}
}

// Close stops accepting batches and waits for the queue to drain.
func (a *Archiver) Close() {
	a.mu.Lock()
	if !a.closed {
		a.closed = true
		close(a.ch)
	}
	a.mu.Unlock()
	<-a.done
}
