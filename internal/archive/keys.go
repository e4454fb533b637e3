package archive

import (
	"encoding/binary"
)

// Keyspace: line/{id_be4}. Big-endian ids keep Pebble's lexicographic
// order equal to write order.

var linePrefix = []byte("line/")

// KeyLine builds the key for one archived line.
func KeyLine(id uint32) []byte {
	k := make([]byte, 0, len(linePrefix)+4)
	k = append(k, linePrefix...)
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], id)
	return append(k, b[:]...)
}

// lineID extracts the id from a line key.
func lineID(key []byte) uint32 {
	return binary.BigEndian.Uint32(key[len(linePrefix):])
}
