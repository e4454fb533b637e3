// Package capture feeds a byte ring from an io.Writer, the embedded-log
// use case the ring exists for.
//
// Input is framed on newlines. A Write ending mid-line leaves that line
// open in the ring; the next Write extends it through the ring's
// append-to-newest operation, so a logger that emits a record across
// several small writes still produces one stored line. Stored lines do
// not include the newline itself.
package capture
