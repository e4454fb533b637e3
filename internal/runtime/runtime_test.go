package runtime

import (
	"context"
	"testing"

	cfgpkg "github.com/rzbill/flexbuf/internal/config"
)

func TestOpenCloseHealth(t *testing.T) {
	cfg := cfgpkg.Default()
	rt, err := Open(Options{Config: cfg})
	if err != nil {
		t.Fatalf("open runtime: %v", err)
	}
	defer rt.Close()
	if err := rt.CheckHealth(context.Background()); err != nil {
		t.Fatalf("health: %v", err)
	}
	if rt.Archive() != nil {
		t.Fatalf("archive must be nil when disabled")
	}
}

func TestOpenRejectsBadConfig(t *testing.T) {
	cfg := cfgpkg.Default()
	cfg.Buffer.Capacity = 0
	if _, err := Open(Options{Config: cfg}); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestRingAndSinkAreWired(t *testing.T) {
	cfg := cfgpkg.Default()
	rt, err := Open(Options{Config: cfg})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rt.Close()

	if _, err := rt.Sink().Write([]byte("from the sink\n")); err != nil {
		t.Fatalf("sink write: %v", err)
	}
	ln, err := rt.Ring().Last()
	if err != nil {
		t.Fatalf("last: %v", err)
	}
	if string(ln.Data()) != "from the sink" {
		t.Fatalf("got %q", ln.Data())
	}
}

func TestArchiveWiring(t *testing.T) {
	cfg := cfgpkg.Default()
	cfg.Buffer.Capacity = 20
	cfg.Buffer.MaxLines = 4
	cfg.Archive.Enabled = true
	cfg.Archive.DataDir = t.TempDir()

	rt, err := Open(Options{Config: cfg})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if rt.Archive() == nil {
		t.Fatalf("archive store not wired")
	}

	// Fill past capacity so id 0 gets evicted into the archive.
	for _, s := range []string{"first-ln!", "keeper-aa", "evictor-z"} {
		if _, err := rt.Ring().WriteLine([]byte(s)); err != nil {
			t.Fatalf("write %q: %v", s, err)
		}
	}
	if err := rt.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Reopen pointing at the same directory and read the archived line.
	rt2, err := Open(Options{Config: cfg})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer rt2.Close()

	data, err := rt2.Archive().Get(0)
	if err != nil {
		t.Fatalf("archived line 0 not found after reopen: %v", err)
	}
	if string(data) != "first-ln!" {
		t.Fatalf("archived bytes %q", data)
	}
}
