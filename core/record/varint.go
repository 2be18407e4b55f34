// Package record decodes SQLite records: the varint primitive, serial
// types, and the header/body payload layout shared by table rows and
// schema entries.
package record

// MaxVarintLen is the maximum encoded size of a SQLite varint.
const MaxVarintLen = 9

// DecodeVarint decodes a SQLite variable-length integer from the start
// of buf. The first eight bytes each contribute their low seven bits
// (the high bit marks continuation); a ninth byte contributes all eight
// bits. Returns the value and the number of bytes consumed (1..9), or
// (0, 0) when buf ends before the varint does.
//
// Rowids and other signed fields are the two's-complement view of the
// returned uint64.
func DecodeVarint(buf []byte) (uint64, int) {
	if len(buf) == 0 {
		return 0, 0
	}

	// Single-byte values are by far the most common case.
	if buf[0] < 0x80 {
		return uint64(buf[0]), 1
	}
	if len(buf) >= 2 && buf[1] < 0x80 {
		return uint64(buf[0]&0x7f)<<7 | uint64(buf[1]), 2
	}

	var v uint64
	for i := 0; i < 8 && i < len(buf); i++ {
		v = (v << 7) | uint64(buf[i]&0x7f)
		if buf[i] < 0x80 {
			return v, i + 1
		}
	}
	if len(buf) >= MaxVarintLen {
		v = (v << 8) | uint64(buf[8])
		return v, MaxVarintLen
	}
	return 0, 0
}
