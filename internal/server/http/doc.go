// Package httpserver exposes the flexbuf HTTP API: line writes and
// reads, CEL-filtered listing, SSE tailing, archive access, and the
// debug snapshot page. Handlers live in the controllers subpackage.
package httpserver
