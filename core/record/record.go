package record

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/FocuswithJustin/LiteWalk/core/errors"
)

// SerialTypeSize returns the body width in bytes for a serial type, or
// -1 for the reserved types 10 and 11.
func SerialTypeSize(serialType uint64) int {
	switch serialType {
	case 0, 8, 9:
		return 0
	case 1:
		return 1
	case 2:
		return 2
	case 3:
		return 3
	case 4:
		return 4
	case 5:
		return 6
	case 6, 7:
		return 8
	case 10, 11:
		return -1
	default:
		if serialType%2 == 0 {
			return int(serialType-12) / 2
		}
		return int(serialType-13) / 2
	}
}

// DecodeRecord decodes a record payload into its column values. The
// payload starts with a varint giving the header length in bytes, the
// header holds one serial-type varint per column, and the body holds
// the column contents back to back in the same order.
//
// The whole payload must be consumed exactly; any disagreement between
// header and body is reported as a malformed record.
func DecodeRecord(payload []byte) ([]Value, error) {
	headerLen, n := DecodeVarint(payload)
	if n == 0 {
		return nil, errors.NewRecord("truncated header length varint")
	}
	if headerLen < uint64(n) || headerLen > uint64(len(payload)) {
		return nil, errors.NewRecord(fmt.Sprintf("header length %d out of range for %d-byte payload", headerLen, len(payload)))
	}

	var serialTypes []uint64
	offset := n
	for offset < int(headerLen) {
		serialType, n := DecodeVarint(payload[offset:headerLen])
		if n == 0 {
			return nil, errors.NewRecord("truncated serial type varint")
		}
		serialTypes = append(serialTypes, serialType)
		offset += n
	}

	values := make([]Value, 0, len(serialTypes))
	for _, serialType := range serialTypes {
		size := SerialTypeSize(serialType)
		if size < 0 {
			return nil, errors.NewRecord(fmt.Sprintf("reserved serial type %d", serialType))
		}
		if offset+size > len(payload) {
			return nil, errors.NewRecord(fmt.Sprintf("serial type %d needs %d bytes, %d remain", serialType, size, len(payload)-offset))
		}
		values = append(values, decodeValue(serialType, payload[offset:offset+size]))
		offset += size
	}

	if offset != len(payload) {
		return nil, errors.NewRecord(fmt.Sprintf("decoded %d of %d payload bytes", offset, len(payload)))
	}
	return values, nil
}

// decodeValue decodes a single column body according to its serial
// type. Integer types 1-6 are big-endian and signed; the 24- and
// 48-bit widths need explicit sign extension.
func decodeValue(serialType uint64, data []byte) Value {
	switch serialType {
	case 0:
		return Null()
	case 1:
		return Integer(int64(int8(data[0])))
	case 2:
		return Integer(int64(int16(binary.BigEndian.Uint16(data))))
	case 3:
		v := int64(data[0])<<16 | int64(data[1])<<8 | int64(data[2])
		if v&0x800000 != 0 {
			v |= ^int64(0xffffff)
		}
		return Integer(v)
	case 4:
		return Integer(int64(int32(binary.BigEndian.Uint32(data))))
	case 5:
		v := int64(binary.BigEndian.Uint16(data))<<32 | int64(binary.BigEndian.Uint32(data[2:]))
		if v&0x800000000000 != 0 {
			v |= ^int64(0xffffffffffff)
		}
		return Integer(v)
	case 6:
		return Integer(int64(binary.BigEndian.Uint64(data)))
	case 7:
		return Real(math.Float64frombits(binary.BigEndian.Uint64(data)))
	case 8:
		return Integer(0)
	case 9:
		return Integer(1)
	default:
		if serialType%2 == 0 {
			return Blob(data)
		}
		return Text(data)
	}
}
