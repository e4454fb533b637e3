package linering

// AppendLast extends the current newest line with more elements, without
// creating a new marker. id must be the newest line's id; a mismatch means
// the caller holds a stale handle and the append is rejected with
// ErrStaleLine. The extended length is admitted against the same
// half-capacity ceiling as WriteLine, checked before any elements move.
//
// Returns the (unchanged) line id on success.
func (r *Ring[T]) AppendLast(id uint32, data []T) (uint32, error) {
	return r.extendLast(id, data, r.textAppend)
}

// ExtendLast is AppendLast without terminator coalescing, even on a
// text-append ring. Writers that hold a line open without storing its
// terminator use it so the line's final element is not overwritten by
// the next fragment.
func (r *Ring[T]) ExtendLast(id uint32, data []T) (uint32, error) {
	return r.extendLast(id, data, false)
}

func (r *Ring[T]) extendLast(id uint32, data []T, coalesce bool) (uint32, error) {
	if len(data) == 0 {
		return 0, ErrEmptyWrite
	}

	r.mu.Lock()

	if r.last < 0 {
		r.mu.Unlock()
		return 0, ErrEmpty
	}
	cur := r.marks[r.last]
	if cur.id != id {
		r.mu.Unlock()
		return 0, ErrStaleLine
	}

	start := (cur.end + 1) % r.n
	grown := cur.length(r.n) + len(data)
	if coalesce {
		// Coalesce with the previous fragment's terminator: overwrite the
		// line's current final element instead of appending after it.
		start = cur.end
		grown--
	}
	if grown > r.n/2 {
		r.mu.Unlock()
		return 0, ErrOversizeWrite
	}

	mk := cur
	mk.end = (start + len(data) - 1) % r.n

	// The growth can newly overlap older lines the original write cleared.
	evicted := r.evictOverlaps(mk)

	r.copyIn(start, data)
	r.marks[r.last] = mk
	r.notifyLocked()

	r.mu.Unlock()

	if len(evicted) > 0 {
		r.hook.OnEvict(evicted)
	}
	return id, nil
}
