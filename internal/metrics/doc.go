// Package metrics holds the process-wide Prometheus collectors for
// flexbuf: ring writes and rejections, evictions, capture throughput, and
// archive flushes. A Metrics value owns its registry so tests can build
// isolated instances.
package metrics
