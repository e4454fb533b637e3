// Package archive persists lines evicted from the ring into Pebble.
//
// The ring hands evicted lines to an Archiver (its eviction hook) which
// enqueues them and returns immediately; a single background goroutine
// drains the queue and commits batches through the Store. Keys are
// big-endian line ids under a common prefix, so iteration order equals
// write order; values carry a crc32c so a torn write is detected on read.
//
// The archive is an overflow record of what the ring dropped, not a
// persistence layer for the live ring.
package archive
