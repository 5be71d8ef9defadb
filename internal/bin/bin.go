package bin

import "encoding/binary"

// PutU32BE writes v into the first four bytes of b in big-endian order.
func PutU32BE(b []byte, v uint32) {
	binary.BigEndian.PutUint32(b, v)
}

// U32BE reads a big-endian uint32 from the first four bytes of b.
func U32BE(b []byte) uint32 {
	return binary.BigEndian.Uint32(b)
}
