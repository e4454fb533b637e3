package linering

import (
	"time"
)

// WaitForWrite blocks until either a write commits (WriteLine or
// AppendLast) or timeout elapses. It returns true if woken by a write,
// false on timeout. A non-positive timeout waits indefinitely.
func (r *Ring[T]) WaitForWrite(timeout time.Duration) bool {
	r.mu.Lock()
	ch := r.notifyCh
	r.mu.Unlock()
	if timeout <= 0 {
		<-ch
		return true
	}
	select {
	case <-ch:
		return true
	case <-time.After(timeout):
		return false
	}
}
