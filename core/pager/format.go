// Package pager provides read-only access to a SQLite database file as
// a sequence of fixed-size pages.
package pager

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/FocuswithJustin/LiteWalk/core/errors"
)

const (
	// HeaderSize is the size of the database file header in bytes.
	HeaderSize = 100

	// MinPageSize is the smallest legal page size.
	MinPageSize = 512

	// MaxPageSize is the largest legal page size, encoded as 1 in the
	// 16-bit header field.
	MaxPageSize = 65536

	// MagicString identifies a SQLite database file.
	MagicString = "SQLite format 3\x00"
)

// Byte offsets into the 100-byte database header.
const (
	// OffsetPageSize is the big-endian uint16 page size field.
	OffsetPageSize = 16
	// OffsetReservedSpace is the per-page reserved byte count.
	OffsetReservedSpace = 20
	// OffsetChangeCounter is the file change counter.
	OffsetChangeCounter = 24
	// OffsetDatabaseSize is the database size in pages (may be stale).
	OffsetDatabaseSize = 28
	// OffsetTextEncoding is the text encoding selector.
	OffsetTextEncoding = 56
	// OffsetUserVersion is the user-settable version number.
	OffsetUserVersion = 60
	// OffsetApplicationID is the application ID set via pragma.
	OffsetApplicationID = 68
)

// Text encoding values.
const (
	EncodingUTF8    = 1
	EncodingUTF16LE = 2
	EncodingUTF16BE = 3
)

// Header holds the fields of the database file header that a read-only
// scan cares about.
type Header struct {
	PageSize      int    // decoded page size (the raw value 1 means 65536)
	ReservedSpace int    // unused bytes at the end of every page
	ChangeCounter uint32 // incremented on every write transaction
	DatabaseSize  uint32 // size in pages, from the header
	TextEncoding  uint32 // 1 = UTF-8, 2/3 = UTF-16
	UserVersion   uint32 // PRAGMA user_version
	ApplicationID uint32 // PRAGMA application_id
}

// UsableSize is the page size minus the reserved space; cell content
// and the overflow threshold are computed against it.
func (h *Header) UsableSize() int {
	return h.PageSize - h.ReservedSpace
}

// ParseHeader decodes and validates a 100-byte database header.
func ParseHeader(data []byte) (*Header, error) {
	if len(data) < HeaderSize {
		return nil, errors.NewFormat("", fmt.Sprintf("header is %d bytes, need %d", len(data), HeaderSize))
	}
	if !bytes.Equal(data[:len(MagicString)], []byte(MagicString)) {
		return nil, errors.NewFormat("", "bad magic string")
	}

	raw := binary.BigEndian.Uint16(data[OffsetPageSize:])
	pageSize := int(raw)
	if raw == 1 {
		pageSize = MaxPageSize
	} else if pageSize < MinPageSize || pageSize > MaxPageSize/2 || pageSize&(pageSize-1) != 0 {
		return nil, errors.NewFormat("", fmt.Sprintf("invalid page size %d", raw))
	}

	h := &Header{
		PageSize:      pageSize,
		ReservedSpace: int(data[OffsetReservedSpace]),
		ChangeCounter: binary.BigEndian.Uint32(data[OffsetChangeCounter:]),
		DatabaseSize:  binary.BigEndian.Uint32(data[OffsetDatabaseSize:]),
		TextEncoding:  binary.BigEndian.Uint32(data[OffsetTextEncoding:]),
		UserVersion:   binary.BigEndian.Uint32(data[OffsetUserVersion:]),
		ApplicationID: binary.BigEndian.Uint32(data[OffsetApplicationID:]),
	}

	if h.TextEncoding != EncodingUTF8 {
		return nil, errors.NewFormat("", fmt.Sprintf("unsupported text encoding %d", h.TextEncoding))
	}
	// SQLite requires at least 480 usable bytes per page.
	if h.UsableSize() < 480 {
		return nil, errors.NewFormat("", fmt.Sprintf("reserved space %d leaves only %d usable bytes", h.ReservedSpace, h.UsableSize()))
	}
	return h, nil
}
