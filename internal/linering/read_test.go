package linering

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
)

func seedLines(t *testing.T, r *Ring[byte], n int) []uint32 {
	t.Helper()
	ids := make([]uint32, n)
	for i := 0; i < n; i++ {
		id, err := r.WriteLine([]byte(fmt.Sprintf("line-%d", i)))
		if err != nil {
			t.Fatalf("seed write %d: %v", i, err)
		}
		ids[i] = id
	}
	return ids
}

func TestReadsOnEmptyRing(t *testing.T) {
	r := newByteRing(t, 16, 4)
	if _, err := r.First(); !errors.Is(err, ErrEmpty) {
		t.Fatalf("First: want ErrEmpty, got %v", err)
	}
	if _, err := r.Last(); !errors.Is(err, ErrEmpty) {
		t.Fatalf("Last: want ErrEmpty, got %v", err)
	}
	if _, err := r.Next(0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Next: want ErrNotFound, got %v", err)
	}
}

func TestFirstAndLast(t *testing.T) {
	r := newByteRing(t, 128, 8)
	ids := seedLines(t, r, 3)
	first, err := r.First()
	if err != nil || first.ID() != ids[0] {
		t.Fatalf("First: id=%d err=%v", first.ID(), err)
	}
	last, err := r.Last()
	if err != nil || last.ID() != ids[2] {
		t.Fatalf("Last: id=%d err=%v", last.ID(), err)
	}
}

func TestNextWalksInWriteOrder(t *testing.T) {
	r := newByteRing(t, 128, 8)
	ids := seedLines(t, r, 4)
	ln, err := r.Next(ids[0])
	if err != nil || ln.ID() != ids[1] {
		t.Fatalf("Next(%d): id=%d err=%v", ids[0], ln.ID(), err)
	}
	ln, err = r.Next(ids[2])
	if err != nil || ln.ID() != ids[3] {
		t.Fatalf("Next(%d): id=%d err=%v", ids[2], ln.ID(), err)
	}
}

func TestNextOfNewestIsNotFound(t *testing.T) {
	r := newByteRing(t, 128, 8)
	ids := seedLines(t, r, 3)
	if _, err := r.Next(ids[2]); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound for newest id, got %v", err)
	}
	if _, err := r.Next(99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound for unknown id, got %v", err)
	}
}

func TestDrainVisitsAllLinesOldestToNewest(t *testing.T) {
	r := newByteRing(t, 256, 16)
	ids := seedLines(t, r, 6)

	var visited []uint32
	ln, err := r.First()
	for err == nil {
		visited = append(visited, ln.ID())
		ln, err = r.DrainNext(ln)
	}
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("drain should end with ErrNotFound, got %v", err)
	}
	if len(visited) != len(ids) {
		t.Fatalf("visited %d lines, want %d", len(visited), len(ids))
	}
	for i, id := range visited {
		if id != ids[i] {
			t.Fatalf("visit %d: id=%d want %d", i, id, ids[i])
		}
		if i > 0 && visited[i] <= visited[i-1] {
			t.Fatalf("ids not strictly increasing: %v", visited)
		}
	}
}

func TestReadAfterEvictIsolation(t *testing.T) {
	r := newByteRing(t, 24, 4)
	want := []byte("survivor")
	if _, err := r.WriteLine(want); err != nil {
		t.Fatalf("write: %v", err)
	}
	ln, err := r.First()
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	// Overwrite the entire pool several times over.
	for i := 0; i < 10; i++ {
		if _, err := r.WriteLine(bytes.Repeat([]byte{byte('A' + i)}, 12)); err != nil {
			t.Fatalf("overwrite %d: %v", i, err)
		}
	}
	if !bytes.Equal(ln.Data(), want) {
		t.Fatalf("previously read line changed after eviction: %q", ln.Data())
	}
}
