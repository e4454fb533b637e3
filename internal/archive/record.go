package archive

import (
	"encoding/binary"
	"hash/crc32"
)

// Value encoding: data | crc32c(data).

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// EncodeLine appends a crc32c trailer to data.
func EncodeLine(data []byte) []byte {
	out := make([]byte, 0, len(data)+4)
	out = append(out, data...)
	var crcb [4]byte
	binary.BigEndian.PutUint32(crcb[:], crc32.Checksum(data, castagnoli))
	return append(out, crcb[:]...)
}

// DecodeLine validates the trailer and returns an owned copy of the data.
func DecodeLine(b []byte) ([]byte, bool) {
	if len(b) < 4 {
		return nil, false
	}
	data := b[:len(b)-4]
	expect := binary.BigEndian.Uint32(b[len(b)-4:])
	if crc32.Checksum(data, castagnoli) != expect {
		return nil, false
	}
	return append([]byte(nil), data...), true
}
