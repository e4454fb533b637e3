package linering

import (
	"bytes"
	"errors"
	"testing"
)

func TestAppendLastOnEmptyRing(t *testing.T) {
	r := newByteRing(t, 16, 4)
	if _, err := r.AppendLast(0, []byte("x")); !errors.Is(err, ErrEmpty) {
		t.Fatalf("want ErrEmpty, got %v", err)
	}
}

func TestAppendLastRejectsStaleID(t *testing.T) {
	r := newByteRing(t, 32, 4)
	first, err := r.WriteLine([]byte("one"))
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := r.WriteLine([]byte("two")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := r.AppendLast(first, []byte("!")); !errors.Is(err, ErrStaleLine) {
		t.Fatalf("want ErrStaleLine, got %v", err)
	}
	ln, err := r.Last()
	if err != nil || !bytes.Equal(ln.Data(), []byte("two")) {
		t.Fatalf("stale append mutated newest line: %q %v", ln.Data(), err)
	}
}

func TestAppendLastExtendsNewestLine(t *testing.T) {
	r := newByteRing(t, 32, 4)
	id, err := r.WriteLine([]byte("hello"))
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := r.AppendLast(id, []byte(", world"))
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if got != id {
		t.Fatalf("append returned id %d, want %d", got, id)
	}
	ln, err := r.Last()
	if err != nil || !bytes.Equal(ln.Data(), []byte("hello, world")) {
		t.Fatalf("got %q, %v", ln.Data(), err)
	}
	if r.Len() != 1 {
		t.Fatalf("append created a new line: len=%d", r.Len())
	}
}

func TestAppendLastAdmitsByLengthAfterAppend(t *testing.T) {
	r := newByteRing(t, 16, 4)
	id, err := r.WriteLine(make([]byte, 6))
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	// 6 + 3 > 8: rejected before any bytes move.
	if _, err := r.AppendLast(id, []byte("abc")); !errors.Is(err, ErrOversizeWrite) {
		t.Fatalf("want ErrOversizeWrite, got %v", err)
	}
	ln, _ := r.Last()
	if ln.Len() != 6 {
		t.Fatalf("rejected append changed length: %d", ln.Len())
	}
	// 6 + 2 == 8: admitted.
	if _, err := r.AppendLast(id, []byte("ab")); err != nil {
		t.Fatalf("append at exactly half capacity rejected: %v", err)
	}
}

func TestAppendLastWrapsAcrossBoundary(t *testing.T) {
	r := newByteRing(t, 20, 8)
	if _, err := r.WriteLine(make([]byte, 10)); err != nil { // id 0 [0,9]
		t.Fatalf("seed: %v", err)
	}
	if _, err := r.WriteLine([]byte("abcdefg")); err != nil { // id 1 [10,16]
		t.Fatalf("seed: %v", err)
	}
	id, err := r.WriteLine([]byte("hi")) // id 2 [17,18]
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	// Appending 4 bytes grows id 2 to [17,2], split 1+3 across the wrap.
	if _, err := r.AppendLast(id, []byte("jklm")); err != nil {
		t.Fatalf("append: %v", err)
	}
	ln, err := r.Last()
	if err != nil || !bytes.Equal(ln.Data(), []byte("hijklm")) {
		t.Fatalf("wrapped append mismatch: %q %v", ln.Data(), err)
	}
}

func TestAppendLastEvictsNewlyOverlappedLines(t *testing.T) {
	r := newByteRing(t, 20, 8)
	if _, err := r.WriteLine(make([]byte, 10)); err != nil { // id 0 [0,9]
		t.Fatalf("seed: %v", err)
	}
	if _, err := r.WriteLine(make([]byte, 8)); err != nil { // id 1 [10,17]
		t.Fatalf("seed: %v", err)
	}
	id, err := r.WriteLine([]byte("ab")) // id 2 [18,19]
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if r.Len() != 3 {
		t.Fatalf("want 3 active lines, got %d", r.Len())
	}
	// Growing id 2 into [18,4] overlaps id 0 but not id 1.
	if _, err := r.AppendLast(id, []byte("cdefg")); err != nil {
		t.Fatalf("append: %v", err)
	}
	if r.Len() != 2 {
		t.Fatalf("want 2 active lines after evicting overlap, got %d", r.Len())
	}
	ln, err := r.First()
	if err != nil || ln.ID() != 1 {
		t.Fatalf("oldest should be id 1, got id %d err %v", ln.ID(), err)
	}
}

func TestAppendLastTextModeCoalescesTerminators(t *testing.T) {
	r := newByteRing(t, 40, 5, WithTextAppend[byte]())
	id, err := r.WriteLine([]byte("second line\x00"))
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := r.AppendLast(id, []byte(". Add.\x00")); err != nil {
		t.Fatalf("append: %v", err)
	}
	ln, err := r.Last()
	if err != nil {
		t.Fatalf("last: %v", err)
	}
	if !bytes.Equal(ln.Data(), []byte("second line. Add.\x00")) {
		t.Fatalf("coalesced line mismatch: %q", ln.Data())
	}
	if ln.Len() != 18 {
		t.Fatalf("coalesced length=%d want 18", ln.Len())
	}
}

func TestExtendLastIgnoresTextMode(t *testing.T) {
	r := newByteRing(t, 256, 8, WithTextAppend[byte]())
	id, err := r.WriteLine([]byte("partial"))
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := r.ExtendLast(id, []byte(" record")); err != nil {
		t.Fatalf("extend: %v", err)
	}
	ln, err := r.Last()
	if err != nil {
		t.Fatalf("last: %v", err)
	}
	if !bytes.Equal(ln.Data(), []byte("partial record")) {
		t.Fatalf("extended line mismatch: %q", ln.Data())
	}
}

func TestAppendLastTextModeAccounting(t *testing.T) {
	r := newByteRing(t, 16, 4, WithTextAppend[byte]())
	id, err := r.WriteLine(append(make([]byte, 5), 0)) // length 6
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	// Coalesced growth: 6 - 1 + 3 = 8 == half capacity, admitted.
	if _, err := r.AppendLast(id, []byte{'a', 'b', 0}); err != nil {
		t.Fatalf("append: %v", err)
	}
	ln, _ := r.Last()
	if ln.Len() != 8 {
		t.Fatalf("length=%d want 8", ln.Len())
	}
}
