package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Buffer.Capacity != 64<<10 {
		t.Fatalf("default capacity")
	}
	if cfg.Buffer.MaxLines != 1024 {
		t.Fatalf("default max lines")
	}
	if cfg.HTTP.Addr != "127.0.0.1:8080" {
		t.Fatalf("default http addr")
	}
	if cfg.Archive.Enabled {
		t.Fatalf("archive should default off")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "flexbuf.json")
	data := []byte(`{"buffer":{"capacity":2048,"maxLines":64,"textAppend":true},"archive":{"enabled":true,"dataDir":"/tmp/fb"},"log":{"level":"debug"}}`)
	if err := os.WriteFile(file, data, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(file)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Buffer.Capacity != 2048 || cfg.Buffer.MaxLines != 64 || !cfg.Buffer.TextAppend {
		t.Fatalf("buffer overrides: %+v", cfg.Buffer)
	}
	if !cfg.Archive.Enabled || cfg.Archive.DataDir != "/tmp/fb" {
		t.Fatalf("archive overrides: %+v", cfg.Archive)
	}
	// Untouched fields keep their defaults.
	if cfg.Archive.Fsync != "always" || cfg.HTTP.Addr != "127.0.0.1:8080" {
		t.Fatalf("defaults lost: %+v", cfg)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Fatalf("log overrides: %+v", cfg.Log)
	}
}

func TestLoadRejectsYAML(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "flexbuf.yaml")
	if err := os.WriteFile(file, []byte("buffer:\n  capacity: 10\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(file); err == nil {
		t.Fatalf("expected yaml rejection")
	}
}

func TestFromEnv(t *testing.T) {
	cfg := Default()
	os.Setenv("FLEXBUF_BUFFER_CAPACITY", "4096")
	os.Setenv("FLEXBUF_BUFFER_TEXT_APPEND", "true")
	os.Setenv("FLEXBUF_HTTP_ADDR", "0.0.0.0:9090")
	os.Setenv("FLEXBUF_ARCHIVE_ENABLED", "1")
	t.Cleanup(func() {
		os.Unsetenv("FLEXBUF_BUFFER_CAPACITY")
		os.Unsetenv("FLEXBUF_BUFFER_TEXT_APPEND")
		os.Unsetenv("FLEXBUF_HTTP_ADDR")
		os.Unsetenv("FLEXBUF_ARCHIVE_ENABLED")
	})
	FromEnv(&cfg)
	if cfg.Buffer.Capacity != 4096 {
		t.Fatalf("env override capacity")
	}
	if !cfg.Buffer.TextAppend {
		t.Fatalf("env override text append")
	}
	if cfg.HTTP.Addr != "0.0.0.0:9090" {
		t.Fatalf("env override addr")
	}
	if !cfg.Archive.Enabled {
		t.Fatalf("env override archive enabled")
	}
}

func TestValidateRejectsBadGeometry(t *testing.T) {
	cfg := Default()
	cfg.Buffer.Capacity = 0
	if err := cfg.Validate(); err == nil {
		t.Fatalf("zero capacity must not validate")
	}
	cfg = Default()
	cfg.Buffer.MaxLines = -1
	if err := cfg.Validate(); err == nil {
		t.Fatalf("negative max lines must not validate")
	}
	cfg = Default()
	cfg.HTTP.Addr = ""
	if err := cfg.Validate(); err == nil {
		t.Fatalf("empty addr must not validate")
	}
}
