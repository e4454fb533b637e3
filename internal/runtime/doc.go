// Package runtime wires the line ring, capture sink, archive, and
// metrics into a single-node flexbuf instance. It exposes Open/Close,
// basic health checks, and accessors used by the HTTP server.
//
// Example:
//
//	cfg := config.Default()
//	rt, _ := runtime.Open(runtime.Options{Config: cfg})
//	defer rt.Close()
//	// Health
//	_ = rt.CheckHealth(context.Background())
//	// Write a line and read it back
//	id, _ := rt.Ring().WriteLine([]byte("hello"))
//	ln, _ := rt.Ring().First()
//	_ = id
//	_ = ln
package runtime
