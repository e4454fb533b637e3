// Package linering implements a fixed-capacity circular buffer for
// variable-length lines of a flat element type.
//
// # Overview
//
// A Ring owns two fixed allocations made at construction: a pool of N
// elements treated as a circular address space, and a secondary ring of M
// line markers {start, end, id} describing which pool region belongs to
// which logical line, in write order. New lines are appended immediately
// after the newest line's end, wrapping past the end of the pool at most
// once per line; the oldest lines whose regions the new bytes overlap are
// evicted by advancing the oldest-marker cursor. Active marker regions are
// always pairwise disjoint.
//
// No single line may exceed half the pool capacity. This admission rule
// guarantees at least two lines can coexist, which in turn guarantees the
// eviction loop never consumes the newest line.
//
// # API surface (internal)
//
//	r, _ := New[byte](4096, 128)
//	id, _ := r.WriteLine([]byte("hello\x00"))     // ids are 0,1,2,... per call
//	id, _ = r.AppendLast(id, []byte("world\x00")) // extend the newest line only
//
//	ln, err := r.First() // owned defragmented copy; ErrEmpty when no lines
//	for err == nil {
//	    use(ln.Data())
//	    ln, err = r.DrainNext(ln) // release + advance, oldest to newest
//	}
//
// Every returned Line is an owned snapshot: later writes that evict or
// overwrite its pool region cannot change it.
//
// # Concurrency
//
// The ring is a passive structure. All public operations run under one
// instance-wide blocking lock (a sync.Mutex unless WithLocker injects
// another implementation). Reads and writes are serialized identically;
// there is no reentrancy and no lock timeout.
package linering
