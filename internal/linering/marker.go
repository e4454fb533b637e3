package linering

// marker describes the pool region [start, end] (inclusive) holding one
// line's elements. start <= end means the region is contiguous; start > end
// means it wraps past the end of the pool (fragmented: [start, n-1] then
// [0, end]).
type marker struct {
	start int
	end   int
	id    uint32
}

// length returns the number of elements in the region for a pool of size n.
func (m marker) length(n int) int {
	if m.start <= m.end {
		return m.end - m.start + 1
	}
	return n - m.start + m.end + 1
}

// intersects reports whether the two regions share any pool cell. Both
// operands may be contiguous or fragmented; two fragmented regions always
// share the wrap zone.
func (m marker) intersects(o marker) bool {
	if m.start <= m.end && o.start <= o.end {
		if m.start <= o.start {
			return m.end >= o.start
		}
		return o.end >= m.start
	}
	if m.start > m.end && o.start > o.end {
		return true
	}
	if m.start > m.end {
		// m wraps: o's start falls in m's tail segment or o's end falls in
		// m's head segment.
		return o.start <= m.end || o.end >= m.start
	}
	return m.start <= o.end || m.end >= o.start
}
