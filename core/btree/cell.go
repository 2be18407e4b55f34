package btree

import (
	"encoding/binary"
	"fmt"

	"github.com/FocuswithJustin/LiteWalk/core/errors"
	"github.com/FocuswithJustin/LiteWalk/core/record"
)

// MaxLocal returns the largest table-leaf payload stored entirely on
// its page. Anything larger spills to overflow pages.
func MaxLocal(usableSize int) int {
	return usableSize - 35
}

// LeafCell is a parsed table-leaf cell.
type LeafCell struct {
	Rowid   int64
	Payload []byte
}

// parseLeafCell decodes a table-leaf cell: payload-length varint, rowid
// varint, then the record payload. Payloads that spill to overflow
// pages are rejected before any bytes are interpreted.
func parseLeafCell(page []byte, offset, usableSize int) (LeafCell, error) {
	payloadSize, n := record.DecodeVarint(page[offset:])
	if n == 0 {
		return LeafCell{}, errors.NewFormat("", "truncated payload length in leaf cell")
	}
	offset += n

	rawRowid, n := record.DecodeVarint(page[offset:])
	if n == 0 {
		return LeafCell{}, errors.NewFormat("", "truncated rowid in leaf cell")
	}
	offset += n
	rowid := int64(rawRowid)

	maxLocal := MaxLocal(usableSize)
	if payloadSize > uint64(maxLocal) {
		return LeafCell{}, errors.NewOverflow(rowid, int64(payloadSize), maxLocal)
	}
	if offset+int(payloadSize) > len(page) {
		return LeafCell{}, errors.NewFormat("", fmt.Sprintf("cell payload for rowid %d overruns the page", rowid))
	}
	return LeafCell{Rowid: rowid, Payload: page[offset : offset+int(payloadSize)]}, nil
}

// parseInteriorCell decodes a table-interior cell: a 4-byte big-endian
// child page number followed by the divider rowid.
func parseInteriorCell(page []byte, offset int) (child uint32, rowid int64, err error) {
	if offset+4 > len(page) {
		return 0, 0, errors.NewFormat("", "truncated child pointer in interior cell")
	}
	child = binary.BigEndian.Uint32(page[offset:])

	rawRowid, n := record.DecodeVarint(page[offset+4:])
	if n == 0 {
		return 0, 0, errors.NewFormat("", "truncated rowid in interior cell")
	}
	return child, int64(rawRowid), nil
}
