package btree

import (
	"fmt"

	"github.com/FocuswithJustin/LiteWalk/core/errors"
	"github.com/FocuswithJustin/LiteWalk/core/pager"
	"github.com/FocuswithJustin/LiteWalk/core/record"
)

// maxDepth bounds the page stack. A healthy table b-tree is a handful
// of levels deep; reaching this limit means a cycle in a corrupt file.
const maxDepth = 20

// Row is one table row: its rowid and the decoded column values.
type Row struct {
	Rowid  int64
	Values []record.Value
}

// frame is one level of the traversal stack. cell counts through the
// page's cells; on interior pages the value NumCells selects the
// rightmost child and anything beyond pops the frame.
type frame struct {
	page   []byte
	header *PageHeader
	cell   int
}

// Cursor streams the rows of one table b-tree in rowid order. It keeps
// an explicit stack of page frames instead of recursing, so a scan can
// stop mid-tree without unwinding. A cursor is single use: once Next
// reports done or an error it stays exhausted.
type Cursor struct {
	store   *pager.Store
	root    uint32
	stack   []frame
	started bool
	done    bool
	err     error
}

// NewCursor prepares a traversal of the b-tree rooted at rootPage.
// Nothing is read until the first call to Next.
func NewCursor(store *pager.Store, rootPage uint32) *Cursor {
	return &Cursor{store: store, root: rootPage}
}

// Next returns the next row in rowid order. The second result is false
// once the tree is exhausted. Errors are sticky.
func (c *Cursor) Next() (Row, bool, error) {
	if c.err != nil {
		return Row{}, false, c.err
	}
	if c.done {
		return Row{}, false, nil
	}
	if !c.started {
		c.started = true
		if err := c.push(c.root); err != nil {
			return Row{}, false, c.fail(err)
		}
	}

	for len(c.stack) > 0 {
		f := &c.stack[len(c.stack)-1]

		if f.header.Type == PageTypeLeafTable {
			if f.cell >= int(f.header.NumCells) {
				c.stack = c.stack[:len(c.stack)-1]
				continue
			}
			ptr, err := f.header.CellPointer(f.page, f.cell)
			if err != nil {
				return Row{}, false, c.fail(err)
			}
			f.cell++

			cell, err := parseLeafCell(f.page, ptr, c.store.UsableSize())
			if err != nil {
				return Row{}, false, c.fail(err)
			}
			values, err := record.DecodeRecord(cell.Payload)
			if err != nil {
				return Row{}, false, c.fail(errors.Wrapf(err, "rowid %d", cell.Rowid))
			}
			return Row{Rowid: cell.Rowid, Values: values}, true, nil
		}

		// Interior page: children in cell order, then the rightmost.
		switch n := int(f.header.NumCells); {
		case f.cell < n:
			ptr, err := f.header.CellPointer(f.page, f.cell)
			if err != nil {
				return Row{}, false, c.fail(err)
			}
			f.cell++
			child, _, err := parseInteriorCell(f.page, ptr)
			if err != nil {
				return Row{}, false, c.fail(err)
			}
			if err := c.push(child); err != nil {
				return Row{}, false, c.fail(err)
			}
		case f.cell == n:
			f.cell++
			if err := c.push(f.header.RightChild); err != nil {
				return Row{}, false, c.fail(err)
			}
		default:
			c.stack = c.stack[:len(c.stack)-1]
		}
	}

	c.done = true
	return Row{}, false, nil
}

func (c *Cursor) push(pageNum uint32) error {
	if len(c.stack) >= maxDepth {
		return errors.NewFormat(c.store.Path(), fmt.Sprintf("b-tree deeper than %d levels", maxDepth))
	}
	page, err := c.store.Page(pageNum)
	if err != nil {
		return err
	}
	header, err := ParsePageHeader(page, pageNum)
	if err != nil {
		return err
	}
	if !header.IsTable() {
		return errors.NewFormat(c.store.Path(), fmt.Sprintf("page %d: index b-tree page in a table scan", pageNum))
	}
	c.stack = append(c.stack, frame{page: page, header: header})
	return nil
}

func (c *Cursor) fail(err error) error {
	c.err = err
	c.stack = nil
	return err
}

// Scan walks the b-tree rooted at rootPage and calls fn for every row
// in rowid order. It stops at the first error from the tree or from fn.
func Scan(store *pager.Store, rootPage uint32, fn func(Row) error) error {
	cur := NewCursor(store, rootPage)
	for {
		row, ok, err := cur.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := fn(row); err != nil {
			return err
		}
	}
}
