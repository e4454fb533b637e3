// Package config provides loading and environment overlay for flexbuf
// runtime configuration. It exposes a Default() baseline, a JSON file
// loader and a FLEXBUF_* environment overlay.
//
// Example:
//
//	cfg := config.Default()
//	// Optionally load from file and overlay env vars
//	if fileCfg, err := config.Load("/etc/flexbuf.json"); err == nil {
//	    cfg = fileCfg
//	}
//	config.FromEnv(&cfg)
//	// Pass cfg into runtime.Options
//	rt, _ := runtime.Open(runtime.Options{Config: cfg})
//	defer rt.Close()
package config
