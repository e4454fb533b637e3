package client

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	cfgpkg "github.com/rzbill/flexbuf/internal/config"
	"github.com/rzbill/flexbuf/internal/runtime"
	httpserver "github.com/rzbill/flexbuf/internal/server/http"
	logpkg "github.com/rzbill/flexbuf/pkg/log"
)

func newTestAPI(t *testing.T) BaseURLFunc {
	t.Helper()
	cfg := cfgpkg.Default()
	cfg.Buffer.Capacity = 256
	cfg.Buffer.MaxLines = 16
	rt, err := runtime.Open(runtime.Options{Config: cfg})
	if err != nil {
		t.Fatalf("rt open: %v", err)
	}
	t.Cleanup(func() { _ = rt.Close() })
	srv := httptest.NewServer(httpserver.New(rt, logpkg.NewNop()).Handler())
	t.Cleanup(srv.Close)
	return func() string { return srv.URL }
}

func runCommand(t *testing.T, baseURL BaseURLFunc, args ...string) string {
	t.Helper()
	root := NewRoot(baseURL)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("command %v: %v\n%s", args, err, out.String())
	}
	return out.String()
}

func TestLineWriteAndReadCommands(t *testing.T) {
	api := newTestAPI(t)

	out := runCommand(t, api, "line", "write", "--data", "hello")
	if !strings.Contains(out, "id: 0") {
		t.Fatalf("write output: %q", out)
	}
	runCommand(t, api, "line", "write", "--data", "world")

	out = runCommand(t, api, "line", "first")
	if !strings.Contains(out, `"hello"`) {
		t.Fatalf("first output: %q", out)
	}
	out = runCommand(t, api, "line", "last")
	if !strings.Contains(out, `"world"`) {
		t.Fatalf("last output: %q", out)
	}
	out = runCommand(t, api, "line", "next", "--id", "0")
	if !strings.Contains(out, `"world"`) {
		t.Fatalf("next output: %q", out)
	}
}

func TestLineAppendCommand(t *testing.T) {
	api := newTestAPI(t)
	runCommand(t, api, "line", "write", "--data", "part")
	runCommand(t, api, "line", "append", "--id", "0", "--data", "ial")
	out := runCommand(t, api, "line", "last")
	if !strings.Contains(out, `"partial"`) {
		t.Fatalf("last output: %q", out)
	}
}

func TestLineListCommandWithFilter(t *testing.T) {
	api := newTestAPI(t)
	runCommand(t, api, "line", "write", "--data", "keep this")
	runCommand(t, api, "line", "write", "--data", "drop that")
	out := runCommand(t, api, "line", "list", "--filter", `text.contains("keep")`)
	if !strings.Contains(out, "keep this") || strings.Contains(out, "drop that") {
		t.Fatalf("list output: %q", out)
	}
}

func TestLineCommandSurfacesServerErrors(t *testing.T) {
	api := newTestAPI(t)
	root := NewRoot(api)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"line", "first"}) // ring is empty
	if err := root.Execute(); err == nil {
		t.Fatalf("expected error on empty ring")
	}
}

func TestStatsCommand(t *testing.T) {
	api := newTestAPI(t)
	runCommand(t, api, "line", "write", "--data", "one")
	out := runCommand(t, api, "stats")
	if !strings.Contains(out, `"capacity"`) || !strings.Contains(out, "256") {
		t.Fatalf("stats output: %q", out)
	}
}

func TestSnapshotCommandSavesFile(t *testing.T) {
	api := newTestAPI(t)
	runCommand(t, api, "line", "write", "--data", "snap")
	path := t.TempDir() + "/snap.html"
	out := runCommand(t, api, "snapshot", "--out", path)
	if !strings.Contains(out, "snapshot saved to:") {
		t.Fatalf("snapshot output: %q", out)
	}
}

func TestArchiveListAgainstDisabledArchive(t *testing.T) {
	api := newTestAPI(t)
	root := NewRoot(api)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"archive", "list"})
	if err := root.Execute(); err == nil {
		t.Fatalf("expected error when archive is disabled")
	}
}
