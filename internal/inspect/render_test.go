package inspect

import (
	"strings"
	"testing"

	"github.com/rzbill/flexbuf/internal/linering"
)

func TestRenderEmptyRing(t *testing.T) {
	r, err := linering.New[byte](80, 4)
	if err != nil {
		t.Fatalf("ring: %v", err)
	}
	var sb strings.Builder
	if err := Render(&sb, r.Snapshot()); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, "BufferSize: 80, MaxLines: 4") {
		t.Fatalf("missing geometry line:\n%s", out)
	}
	if !strings.Contains(out, "IndexFirstLine: -1, IndexLastLine: -1") {
		t.Fatalf("missing empty cursor line:\n%s", out)
	}
}

func TestRenderShowsLinesAndEscapes(t *testing.T) {
	r, err := linering.New[byte](80, 4)
	if err != nil {
		t.Fatalf("ring: %v", err)
	}
	if _, err := r.WriteLine([]byte("hi\n\x00")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := r.WriteLine([]byte("<b>tag</b>")); err != nil {
		t.Fatalf("write: %v", err)
	}

	var sb strings.Builder
	if err := Render(&sb, r.Snapshot()); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := sb.String()

	for _, want := range []string{
		`\n`, `\0`, // control escapes in the grid
		"color-0", "color-1", // per-id coloring
		"buffer-first-line-cell", "buffer-last-line-cell",
		`hi\n\0`, // marker table data column
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	// Raw markup from line data must be escaped, not emitted as HTML.
	if strings.Contains(out, "<b>tag</b>") {
		t.Fatalf("unescaped line data in output")
	}
	if !strings.Contains(out, "&lt;b&gt;tag&lt;/b&gt;") {
		t.Fatalf("expected escaped tag text:\n%s", out)
	}
}

func TestRenderRowWidth(t *testing.T) {
	r, err := linering.New[byte](120, 4)
	if err != nil {
		t.Fatalf("ring: %v", err)
	}
	var sb strings.Builder
	if err := Render(&sb, r.Snapshot()); err != nil {
		t.Fatalf("render: %v", err)
	}
	rows := strings.Count(sb.String(), "<tr>") - 1 // minus the marker table header row
	if rows != 3 {
		t.Fatalf("want 3 grid rows of 40 cells, got %d", rows)
	}
}
