package linering

// WriteLine appends a new logical line after the current newest line and
// returns its id. Ids start at 0 and increase by one per accepted call.
//
// The write is rejected with ErrEmptyWrite or ErrOversizeWrite before any
// state is touched; otherwise it fully commits: elements copied (split
// across the wrap boundary when needed), overlapped older lines evicted,
// cursors updated.
func (r *Ring[T]) WriteLine(data []T) (uint32, error) {
	if len(data) == 0 {
		return 0, ErrEmptyWrite
	}
	// At least two lines must be able to coexist, or a write could evict
	// the line it just created.
	if len(data) > r.n/2 {
		return 0, ErrOversizeWrite
	}

	r.mu.Lock()

	var mk marker
	if r.last < 0 {
		mk = marker{start: 0, end: len(data) - 1, id: 0}
	} else {
		start := (r.marks[r.last].end + 1) % r.n
		mk = marker{
			start: start,
			end:   (start + len(data) - 1) % r.n,
			id:    r.marks[r.last].id + 1,
		}
	}

	// Resolve overlaps before the copy clobbers the evicted lines' storage,
	// so the hook can still snapshot them. The test is pure marker
	// geometry; running it before the copy changes nothing.
	evicted := r.evictOverlaps(mk)

	r.copyIn(mk.start, data)

	slot := r.nextSlot(r.last)
	if r.first < 0 {
		r.first = slot
	}
	r.last = slot
	r.marks[slot] = mk
	r.notifyLocked()

	r.mu.Unlock()

	if len(evicted) > 0 {
		r.hook.OnEvict(evicted)
	}
	return mk.id, nil
}
