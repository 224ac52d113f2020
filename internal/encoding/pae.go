package encoding

import "encoding/binary"

// PAE implements Pre-Authentication Encoding: an 8-byte little-endian count
// of parts followed by, for each part in order, its 8-byte little-endian
// length and raw bytes. Length prefixes make the encoding injective over
// sequences of byte strings, so two distinct (header, payload, footer)
// triples can never produce colliding authenticated data.
func PAE(parts ...[]byte) []byte {
	size := 8 + 8*len(parts)
	for _, p := range parts {
		size += len(p)
	}

	out := make([]byte, size)
	le64(out[:8], uint64(len(parts)))
	off := 8
	for _, p := range parts {
		le64(out[off:off+8], uint64(len(p)))
		off += 8
		off += copy(out[off:], p)
	}
	return out
}

// le64 writes n as little-endian with the most significant bit cleared, per
// the PAE definition.
func le64(dst []byte, n uint64) {
	binary.LittleEndian.PutUint64(dst, n&^(uint64(1)<<63))
}
