package linering

// evictOverlaps advances the oldest-line cursor past every active line
// whose region intersects mk, restoring the disjointness invariant.
// Callers hold the lock and pass the marker geometry of the incoming
// write before copying its elements, so the returned snapshots still hold
// the evicted lines' original bytes.
//
// The loop is bounded at the newest slot: the half-capacity admission rule
// means the incoming region can never reach the newest line for WriteLine
// (the two fit the pool together), and an extended line must never evict
// itself for AppendLast.
func (r *Ring[T]) evictOverlaps(mk marker) []Line[T] {
	if r.first < 0 {
		return nil
	}
	var out []Line[T]
	for r.first != r.last && r.marks[r.first].intersects(mk) {
		if r.hasHook {
			old := r.marks[r.first]
			out = append(out, Line[T]{data: r.copyOut(old), id: old.id})
		}
		r.first = r.nextSlot(r.first)
	}
	return out
}
