package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the top-level configuration loaded from file/env.
type Config struct {
	Buffer  BufferConfig  `json:"buffer"`
	HTTP    HTTPConfig    `json:"http"`
	Archive ArchiveConfig `json:"archive"`
	Log     LogConfig     `json:"log"`
}

// BufferConfig sizes the in-memory line ring.
type BufferConfig struct {
	Capacity   int  `json:"capacity"`
	MaxLines   int  `json:"maxLines"`
	TextAppend bool `json:"textAppend"`
}

// HTTPConfig configures the HTTP API listener.
type HTTPConfig struct {
	Addr string `json:"addr"`
}

// ArchiveConfig configures eviction archiving to disk. When disabled,
// evicted lines are simply dropped.
type ArchiveConfig struct {
	Enabled    bool   `json:"enabled"`
	DataDir    string `json:"dataDir"`
	Fsync      string `json:"fsync"`
	QueueDepth int    `json:"queueDepth"`
}

// LogConfig configures process logging.
type LogConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		Buffer: BufferConfig{
			Capacity: 64 << 10,
			MaxLines: 1024,
		},
		HTTP: HTTPConfig{
			Addr: "127.0.0.1:8080",
		},
		Archive: ArchiveConfig{
			Fsync:      "always",
			QueueDepth: 256,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate rejects geometries the ring cannot be built from.
func (c Config) Validate() error {
	if c.Buffer.Capacity <= 0 {
		return fmt.Errorf("buffer.capacity must be positive, got %d", c.Buffer.Capacity)
	}
	if c.Buffer.MaxLines <= 0 {
		return fmt.Errorf("buffer.maxLines must be positive, got %d", c.Buffer.MaxLines)
	}
	if c.HTTP.Addr == "" {
		return errors.New("http.addr must not be empty")
	}
	return nil
}

// Load reads configuration from a JSON file. If path is empty, returns
// defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return Config{}, errors.New("yaml config not supported yet; use JSON for now")
	default:
		if err := json.Unmarshal(b, &cfg); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}
