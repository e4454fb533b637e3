package controllers

import (
	"encoding/json"
	"net/http"
)

// sseSink formats tail events as Server-Sent Events.
type sseSink struct {
	w http.ResponseWriter
	r *http.Request
}

// Send writes one line as an SSE data event.
//
// The line is JSON-encoded and sent with the "data: " prefix followed by
// two newlines as required by the SSE specification.
func (s sseSink) Send(ln lineJSON) error {
	b, err := json.Marshal(ln)
	if err != nil {
		return err
	}
	if _, err := s.w.Write([]byte("data: ")); err != nil {
		return err
	}
	if _, err := s.w.Write(b); err != nil {
		return err
	}
	if _, err := s.w.Write([]byte("\n\n")); err != nil {
		return err
	}
	return nil
}

// Flush flushes the HTTP response writer if it supports flushing, so
// events reach the client immediately.
func (s sseSink) Flush() error {
	if f, ok := s.w.(http.Flusher); ok {
		f.Flush()
	}
	return nil
}
