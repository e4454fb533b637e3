package linering

// MarkerView describes one active marker for inspection.
type MarkerView struct {
	Slot   int
	ID     uint32
	Start  int
	End    int
	Length int
}

// Snapshot is a consistent read-only view of the ring taken under the
// lock: a copy of every pool cell plus the active markers in write order.
// It carries no write access to the ring.
type Snapshot[T any] struct {
	Cells    []T
	Markers  []MarkerView
	First    int // oldest marker slot, -1 when empty
	Last     int // newest marker slot, -1 when empty
	Cap      int
	MaxLines int
}

// Snapshot copies out the full ring state for debug rendering.
func (r *Ring[T]) Snapshot() Snapshot[T] {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := Snapshot[T]{
		Cells:    append([]T(nil), r.pool...),
		First:    r.first,
		Last:     r.last,
		Cap:      r.n,
		MaxLines: r.m,
	}
	if r.last < 0 {
		return s
	}
	for i := r.first; ; i = r.nextSlot(i) {
		mk := r.marks[i]
		s.Markers = append(s.Markers, MarkerView{
			Slot:   i,
			ID:     mk.id,
			Start:  mk.start,
			End:    mk.end,
			Length: mk.length(r.n),
		})
		if i == r.last {
			break
		}
	}
	return s
}

// MarkerOf returns the view of the active marker covering pool cell, if
// any. Used by the snapshot renderer to color cells by line.
func (s Snapshot[T]) MarkerOf(cell int) (MarkerView, bool) {
	for _, mv := range s.Markers {
		if mv.Start <= mv.End {
			if mv.Start <= cell && cell <= mv.End {
				return mv, true
			}
			continue
		}
		if cell <= mv.End || mv.Start <= cell {
			return mv, true
		}
	}
	return MarkerView{}, false
}
