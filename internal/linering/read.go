package linering

// Line is an owned snapshot of one stored line. Its backing copy is
// independent of the pool from the moment it is returned: eviction or
// overwriting of the original region cannot change it.
type Line[T any] struct {
	data []T
	id   uint32
}

// Data returns the line's elements.
func (l Line[T]) Data() []T { return l.data }

// Len returns the line's length in elements.
func (l Line[T]) Len() int { return len(l.data) }

// ID returns the line's id.
func (l Line[T]) ID() uint32 { return l.id }

// First returns an owned copy of the oldest active line, or ErrEmpty.
func (r *Ring[T]) First() (Line[T], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.first < 0 {
		return Line[T]{}, ErrEmpty
	}
	return r.lineAt(r.first), nil
}

// Last returns an owned copy of the newest active line, or ErrEmpty.
func (r *Ring[T]) Last() (Line[T], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.last < 0 {
		return Line[T]{}, ErrEmpty
	}
	return r.lineAt(r.last), nil
}

// Next returns an owned copy of the line immediately following the line
// with the given id, in write order. ErrNotFound when id belongs to the
// newest line or is not among the active lines.
func (r *Ring[T]) Next(id uint32) (Line[T], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.last < 0 {
		return Line[T]{}, ErrNotFound
	}
	for i := r.first; i != r.last; i = r.nextSlot(i) {
		if r.marks[i].id == id {
			return r.lineAt(r.nextSlot(i)), nil
		}
	}
	return Line[T]{}, ErrNotFound
}

// DrainNext releases ln and returns the line following it. The standard
// iteration idiom for draining oldest to newest:
//
//	ln, err := r.First()
//	for err == nil {
//	    use(ln)
//	    ln, err = r.DrainNext(ln)
//	}
func (r *Ring[T]) DrainNext(ln Line[T]) (Line[T], error) {
	return r.Next(ln.id)
}

// lineAt copies out the line in marker slot i; callers hold the lock.
func (r *Ring[T]) lineAt(i int) Line[T] {
	mk := r.marks[i]
	return Line[T]{data: r.copyOut(mk), id: mk.id}
}
