package controllers

// Common request/response types for HTTP controllers

// writeReq represents a request to store a new line.
type writeReq struct {
	Data string `json:"data"`
}

// appendReq represents a request to extend the newest line.
type appendReq struct {
	ID   uint32 `json:"id"`
	Data string `json:"data"`
}

// idResp carries the id assigned to a stored or extended line.
type idResp struct {
	ID uint32 `json:"id"`
}

// lineJSON represents one buffered or archived line.
type lineJSON struct {
	ID     uint32 `json:"id"`
	Data   string `json:"data"`
	Length int    `json:"length"`
}

// statsJSON summarizes ring occupancy.
type statsJSON struct {
	Capacity    int     `json:"capacity"`
	MaxLines    int     `json:"max_lines"`
	ActiveLines int     `json:"active_lines"`
	FirstID     *uint32 `json:"first_id,omitempty"`
	LastID      *uint32 `json:"last_id,omitempty"`
}
