package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rzbill/flexbuf/internal/linering"
)

// Helper functions for common HTTP responses

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// writeJSON writes a JSON response with the given data.
func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(data)
}

// writeLineError maps ring sentinel errors to HTTP statuses: rejected
// input is 422, a stale append handle is 409, and missing lines are 404.
func writeLineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, linering.ErrEmptyWrite), errors.Is(err, linering.ErrOversizeWrite):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, linering.ErrStaleLine):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, linering.ErrEmpty), errors.Is(err, linering.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// rejectReason maps admission errors to the reject counter's reason
// label. Lookup errors such as ErrEmpty and ErrNotFound are not
// rejections and report ok false.
func rejectReason(err error) (string, bool) {
	switch {
	case errors.Is(err, linering.ErrEmptyWrite):
		return "empty", true
	case errors.Is(err, linering.ErrOversizeWrite):
		return "oversize", true
	case errors.Is(err, linering.ErrStaleLine):
		return "stale", true
	}
	return "", false
}

// parseLimit parses a limit string and returns a valid limit value.
//
// Returns 0 for empty strings or invalid values.
func parseLimit(limitStr string) int {
	if limitStr == "" {
		return 0
	}
	if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
		return limit
	}
	return 0
}

// parseID parses a decimal line id query parameter.
func parseID(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(n), nil
}

func toLineJSON(ln linering.Line[byte]) lineJSON {
	return lineJSON{ID: ln.ID(), Data: string(ln.Data()), Length: ln.Len()}
}
