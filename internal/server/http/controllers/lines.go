package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rzbill/flexbuf/internal/linering"
	"github.com/rzbill/flexbuf/internal/query"
	"github.com/rzbill/flexbuf/internal/runtime"
	logpkg "github.com/rzbill/flexbuf/pkg/log"
)

// tailPollInterval bounds how long a tail request sleeps between write
// notifications, so request cancellation is noticed promptly.
const tailPollInterval = 500 * time.Millisecond

// LinesController handles the line write and read endpoints.
type LinesController struct {
	rt     *runtime.Runtime
	logger logpkg.Logger
}

// NewLinesController creates a new lines controller.
func NewLinesController(rt *runtime.Runtime, logger logpkg.Logger) *LinesController {
	return &LinesController{rt: rt, logger: logger}
}

// RegisterRoutes registers line routes with the given mux.
//
// This method sets up HTTP endpoints for:
// - Storing and extending lines (/v1/lines/write, /v1/lines/append)
// - Point reads (/v1/lines/first, /v1/lines/last, /v1/lines/next)
// - Filtered listing (/v1/lines) and live tailing (/v1/lines/tail)
func (c *LinesController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/lines/write", c.handleWrite)
	mux.HandleFunc("/v1/lines/append", c.handleAppend)
	mux.HandleFunc("/v1/lines/first", c.handleFirst)
	mux.HandleFunc("/v1/lines/last", c.handleLast)
	mux.HandleFunc("/v1/lines/next", c.handleNext)
	mux.HandleFunc("/v1/lines", c.handleList)
	mux.HandleFunc("/v1/lines/tail", c.handleTail)
}

func (c *LinesController) handleWrite(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	var req writeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	id, err := c.rt.Ring().WriteLine([]byte(req.Data))
	if err != nil {
		if reason, ok := rejectReason(err); ok {
			c.rt.Metrics().WriteRejects.WithLabelValues(reason).Inc()
		}
		writeLineError(w, err)
		return
	}
	m := c.rt.Metrics()
	m.LinesWritten.Inc()
	m.ActiveLines.Set(float64(c.rt.Ring().Len()))
	writeJSON(w, idResp{ID: id})
}

func (c *LinesController) handleAppend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	var req appendReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	id, err := c.rt.Ring().AppendLast(req.ID, []byte(req.Data))
	if err != nil {
		if reason, ok := rejectReason(err); ok {
			c.rt.Metrics().WriteRejects.WithLabelValues(reason).Inc()
		}
		writeLineError(w, err)
		return
	}
	m := c.rt.Metrics()
	m.Appends.Inc()
	m.ActiveLines.Set(float64(c.rt.Ring().Len()))
	writeJSON(w, idResp{ID: id})
}

func (c *LinesController) handleFirst(w http.ResponseWriter, r *http.Request) {
	ln, err := c.rt.Ring().First()
	if err != nil {
		writeLineError(w, err)
		return
	}
	writeJSON(w, toLineJSON(ln))
}

func (c *LinesController) handleLast(w http.ResponseWriter, r *http.Request) {
	ln, err := c.rt.Ring().Last()
	if err != nil {
		writeLineError(w, err)
		return
	}
	writeJSON(w, toLineJSON(ln))
}

func (c *LinesController) handleNext(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.URL.Query().Get("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}
	ln, err := c.rt.Ring().Next(id)
	if err != nil {
		writeLineError(w, err)
		return
	}
	writeJSON(w, toLineJSON(ln))
}

// handleList drains the buffer oldest to newest, applying an optional
// CEL filter and limit.
func (c *LinesController) handleList(w http.ResponseWriter, r *http.Request) {
	filter, err := query.Compile(r.URL.Query().Get("filter"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid filter: "+err.Error())
		return
	}
	limit := parseLimit(r.URL.Query().Get("limit"))

	lines := []lineJSON{}
	ln, err := c.rt.Ring().First()
	for err == nil {
		if filter.Match(ln) {
			lines = append(lines, toLineJSON(ln))
			if limit > 0 && len(lines) >= limit {
				break
			}
		}
		ln, err = c.rt.Ring().DrainNext(ln)
	}
	writeJSON(w, map[string]any{"lines": lines})
}

// handleTail streams new lines over SSE as they are written. The
// connection replays nothing: only lines stored after the request
// arrives are sent.
func (c *LinesController) handleTail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	filter, err := query.Compile(r.URL.Query().Get("filter"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid filter: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	sink := sseSink{w: w, r: r}
	_ = sink.Flush()

	ring := c.rt.Ring()
	lastID, have := c.newestID()
	for {
		for {
			ln, ok := c.nextAfter(lastID, have)
			if !ok {
				break
			}
			lastID, have = ln.ID(), true
			if !filter.Match(ln) {
				continue
			}
			if err := sink.Send(toLineJSON(ln)); err != nil {
				return
			}
		}
		_ = sink.Flush()
		select {
		case <-r.Context().Done():
			return
		default:
		}
		ring.WaitForWrite(tailPollInterval)
	}
}

func (c *LinesController) newestID() (uint32, bool) {
	ln, err := c.rt.Ring().Last()
	if err != nil {
		return 0, false
	}
	return ln.ID(), true
}

// nextAfter returns the oldest buffered line with an id greater than
// lastID, falling back to the oldest line when lastID itself has been
// evicted in the meantime.
func (c *LinesController) nextAfter(lastID uint32, have bool) (linering.Line[byte], bool) {
	ring := c.rt.Ring()
	if !have {
		ln, err := ring.First()
		return ln, err == nil
	}
	if ln, err := ring.Next(lastID); err == nil {
		return ln, true
	}
	// lastID may have been evicted: rescan from the oldest survivor.
	ln, err := ring.First()
	if err != nil || ln.ID() <= lastID {
		return linering.Line[byte]{}, false
	}
	return ln, true
}
