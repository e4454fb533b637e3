package config

import (
	"os"
	"strconv"
)

// FromEnv overlays FLEXBUF_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("FLEXBUF_BUFFER_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Buffer.Capacity = n
		}
	}
	if v := os.Getenv("FLEXBUF_BUFFER_MAX_LINES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Buffer.MaxLines = n
		}
	}
	if v := os.Getenv("FLEXBUF_BUFFER_TEXT_APPEND"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Buffer.TextAppend = b
		}
	}
	if v := os.Getenv("FLEXBUF_HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("FLEXBUF_ARCHIVE_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Archive.Enabled = b
		}
	}
	if v := os.Getenv("FLEXBUF_ARCHIVE_DATA_DIR"); v != "" {
		cfg.Archive.DataDir = v
	}
	if v := os.Getenv("FLEXBUF_ARCHIVE_FSYNC"); v != "" {
		cfg.Archive.Fsync = v
	}
	if v := os.Getenv("FLEXBUF_ARCHIVE_QUEUE_DEPTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Archive.QueueDepth = n
		}
	}
	if v := os.Getenv("FLEXBUF_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("FLEXBUF_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}
