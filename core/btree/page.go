// Package btree walks table b-trees in their on-disk form and streams
// their rows in rowid order.
package btree

import (
	"encoding/binary"
	"fmt"

	"github.com/FocuswithJustin/LiteWalk/core/errors"
	"github.com/FocuswithJustin/LiteWalk/core/pager"
)

// B-tree page types (the first byte of the page header).
const (
	PageTypeInteriorIndex = 0x02
	PageTypeInteriorTable = 0x05
	PageTypeLeafIndex     = 0x0a
	PageTypeLeafTable     = 0x0d
)

// Page header layout, relative to the header start. The header sits at
// byte 0 of every page except page 1, where it follows the 100-byte
// database header.
const (
	offType           = 0 // page type byte
	offFirstFreeblock = 1 // uint16 offset of the first freeblock chain
	offNumCells       = 3 // uint16 number of cells on the page
	offContentStart   = 5 // uint16 start of the cell content area (0 means 65536)
	offFragmented     = 7 // count of fragmented free bytes
	offRightChild     = 8 // uint32 rightmost child page (interior pages only)

	headerSizeLeaf     = 8
	headerSizeInterior = 12
)

// PageHeader is the decoded b-tree page header.
type PageHeader struct {
	Type           byte
	FirstFreeblock uint16
	NumCells       uint16
	ContentStart   uint16
	Fragmented     byte
	RightChild     uint32 // valid for interior pages only

	cellPtrBase int // offset of the cell pointer array within the page
}

// IsLeaf reports whether the page stores payloads rather than children.
func (h *PageHeader) IsLeaf() bool {
	return h.Type == PageTypeLeafTable || h.Type == PageTypeLeafIndex
}

// IsTable reports whether the page belongs to a table b-tree.
func (h *PageHeader) IsTable() bool {
	return h.Type == PageTypeLeafTable || h.Type == PageTypeInteriorTable
}

// Size returns the header size in bytes: 8 on leaves, 12 on interiors.
func (h *PageHeader) Size() int {
	if h.IsLeaf() {
		return headerSizeLeaf
	}
	return headerSizeInterior
}

// ParsePageHeader decodes the b-tree header of a page. pageNum selects
// the page-1 offset rule.
func ParsePageHeader(page []byte, pageNum uint32) (*PageHeader, error) {
	base := 0
	if pageNum == 1 {
		base = pager.HeaderSize
	}
	if len(page) < base+headerSizeLeaf {
		return nil, errors.NewFormat("", fmt.Sprintf("page %d: %d bytes is too small for a page header", pageNum, len(page)))
	}

	h := &PageHeader{
		Type:           page[base+offType],
		FirstFreeblock: binary.BigEndian.Uint16(page[base+offFirstFreeblock:]),
		NumCells:       binary.BigEndian.Uint16(page[base+offNumCells:]),
		ContentStart:   binary.BigEndian.Uint16(page[base+offContentStart:]),
		Fragmented:     page[base+offFragmented],
	}

	switch h.Type {
	case PageTypeLeafTable, PageTypeLeafIndex:
	case PageTypeInteriorTable, PageTypeInteriorIndex:
		if len(page) < base+headerSizeInterior {
			return nil, errors.NewFormat("", fmt.Sprintf("page %d: truncated interior page header", pageNum))
		}
		h.RightChild = binary.BigEndian.Uint32(page[base+offRightChild:])
	default:
		return nil, errors.NewFormat("", fmt.Sprintf("page %d: unknown b-tree page type %#02x", pageNum, h.Type))
	}

	h.cellPtrBase = base + h.Size()
	return h, nil
}

// CellPointer returns the page offset of cell i from the cell pointer
// array.
func (h *PageHeader) CellPointer(page []byte, i int) (int, error) {
	if i < 0 || i >= int(h.NumCells) {
		return 0, errors.NewFormat("", fmt.Sprintf("cell index %d out of range (%d cells)", i, h.NumCells))
	}
	at := h.cellPtrBase + 2*i
	if at+2 > len(page) {
		return 0, errors.NewFormat("", fmt.Sprintf("cell pointer %d overruns the page", i))
	}
	ptr := int(binary.BigEndian.Uint16(page[at:]))
	if ptr >= len(page) {
		return 0, errors.NewFormat("", fmt.Sprintf("cell %d points past the end of the page (%d)", i, ptr))
	}
	return ptr, nil
}
