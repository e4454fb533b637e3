package capture

import (
	"bytes"
	"errors"
	"sync"

	"github.com/rzbill/flexbuf/internal/linering"
	"github.com/rzbill/flexbuf/internal/metrics"
	logpkg "github.com/rzbill/flexbuf/pkg/log"
)

// Sink adapts a byte ring to io.Writer with newline framing.
//
// Write never returns an error: a capture buffer must not fail the logger
// feeding it. Fragments that cannot be stored (over half the ring's
// capacity) are split across multiple stored lines.
type Sink struct {
	mu      sync.Mutex
	ring    *linering.Ring[byte]
	logger  logpkg.Logger
	metrics *metrics.Metrics

	openID uint32 // id of the trailing unterminated line, if open
	open   bool
}

// NewSink wraps ring. logger and m must be non-nil.
func NewSink(ring *linering.Ring[byte], logger logpkg.Logger, m *metrics.Metrics) *Sink {
	return &Sink{
		ring:    ring,
		logger:  logger.With(logpkg.Component("capture")),
		metrics: m,
	}
}

// Write stores p's complete lines and holds any trailing fragment open.
func (s *Sink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.BytesCaptured.Add(float64(len(p)))

	rest := p
	for {
		i := bytes.IndexByte(rest, '\n')
		if i < 0 {
			break
		}
		s.consume(rest[:i], false)
		rest = rest[i+1:]
	}
	if len(rest) > 0 {
		s.consume(rest, true)
	}

	s.metrics.ActiveLines.Set(float64(s.ring.Len()))
	return len(p), nil
}

// consume stores one segment. keepOpen marks a trailing fragment whose
// terminating newline has not arrived yet.
func (s *Sink) consume(seg []byte, keepOpen bool) {
	if len(seg) == 0 {
		// A bare newline closes the open fragment, or is skipped.
		s.open = false
		return
	}

	if s.open {
		// ExtendLast, not AppendLast: the open line has no stored
		// terminator for a text-append ring to coalesce over.
		id, err := s.ring.ExtendLast(s.openID, seg)
		if err == nil {
			s.metrics.Appends.Inc()
			s.openID = id
			s.open = keepOpen
			return
		}
		// A newer line exists or the line is full; fall through and store
		// the fragment on its own.
		if !errors.Is(err, linering.ErrStaleLine) && !errors.Is(err, linering.ErrOversizeWrite) {
			s.logger.Warn("append to open line failed", logpkg.Err(err))
		}
		s.open = false
	}

	max := s.ring.Cap() / 2
	for len(seg) > 0 {
		chunk := seg
		if len(chunk) > max {
			chunk = chunk[:max]
		}
		id, err := s.ring.WriteLine(chunk)
		if err != nil {
			s.metrics.WriteRejects.WithLabelValues(rejectReason(err)).Inc()
			s.logger.Warn("dropping captured line", logpkg.Err(err),
				logpkg.Int("bytes", len(chunk)))
			s.open = false
			return
		}
		s.metrics.LinesWritten.Inc()
		s.openID = id
		s.open = keepOpen && len(seg) == len(chunk)
		seg = seg[len(chunk):]
	}
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, linering.ErrEmptyWrite):
		return "empty"
	case errors.Is(err, linering.ErrOversizeWrite):
		return "oversize"
	case errors.Is(err, linering.ErrStaleLine):
		return "stale"
	default:
		return "other"
	}
}
