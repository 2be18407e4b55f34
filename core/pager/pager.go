package pager

import (
	"fmt"
	"io"
	"os"

	"github.com/FocuswithJustin/LiteWalk/core/errors"
	"github.com/ulikunitz/xz"
)

// xzMagic is the six-byte signature of an xz stream.
var xzMagic = []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}

// Store is an open database file. Pages are fetched on demand and never
// cached; the engine is single-threaded and scans each page once.
type Store struct {
	path   string
	file   *os.File // nil when the database was decompressed into memory
	data   []byte   // decompressed contents for xz input
	size   int64
	header *Header
}

// Open opens a database file read-only and validates its header.
// Files carrying the xz stream signature are decompressed into memory
// first, so compressed snapshots can be inspected directly.
func Open(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}

	s := &Store{path: path}
	if compressed, err := hasXZMagic(f); err != nil {
		f.Close()
		return nil, errors.NewIO("read", path, err)
	} else if compressed {
		xzr, err := xz.NewReader(f)
		if err != nil {
			f.Close()
			return nil, errors.NewIO("decompress", path, err)
		}
		data, readErr := io.ReadAll(xzr)
		f.Close() // xz reader doesn't need closing
		if readErr != nil {
			return nil, errors.NewIO("decompress", path, readErr)
		}
		s.data = data
		s.size = int64(len(data))
	} else {
		info, err := f.Stat()
		if err != nil {
			f.Close()
			return nil, errors.NewIO("stat", path, err)
		}
		s.file = f
		s.size = info.Size()
	}

	buf := make([]byte, HeaderSize)
	if _, err := s.readAt(buf, 0); err != nil {
		s.Close()
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, errors.NewFormat(path, fmt.Sprintf("file is %d bytes, too small for a database header", s.size))
		}
		return nil, errors.NewIO("read header", path, err)
	}
	header, err := ParseHeader(buf)
	if err != nil {
		s.Close()
		return nil, errors.Wrapf(err, "open %s", path)
	}
	s.header = header
	return s, nil
}

// hasXZMagic sniffs the stream signature and rewinds.
func hasXZMagic(f *os.File) (bool, error) {
	magic := make([]byte, len(xzMagic))
	n, err := f.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return false, err
	}
	if n < len(xzMagic) {
		return false, nil
	}
	for i, b := range xzMagic {
		if magic[i] != b {
			return false, nil
		}
	}
	return true, nil
}

func (s *Store) readAt(buf []byte, off int64) (int, error) {
	if s.data != nil {
		if off >= s.size {
			return 0, io.EOF
		}
		n := copy(buf, s.data[off:])
		if n < len(buf) {
			return n, io.ErrUnexpectedEOF
		}
		return n, nil
	}
	return s.file.ReadAt(buf, off)
}

// Header returns the parsed database header.
func (s *Store) Header() *Header {
	return s.header
}

// PageSize returns the decoded page size in bytes.
func (s *Store) PageSize() int {
	return s.header.PageSize
}

// UsableSize returns the page size minus reserved space.
func (s *Store) UsableSize() int {
	return s.header.UsableSize()
}

// PageCount returns the number of whole pages present in the file.
func (s *Store) PageCount() int {
	return int(s.size / int64(s.header.PageSize))
}

// Path returns the path the store was opened with.
func (s *Store) Path() string {
	return s.path
}

// Page returns the contents of a page. Pages are numbered from 1; page
// 1 begins with the 100-byte database header.
func (s *Store) Page(n uint32) ([]byte, error) {
	pageSize := int64(s.header.PageSize)
	if n == 0 || int64(n) > s.size/pageSize {
		return nil, errors.NewIO("read", s.path,
			fmt.Errorf("page %d out of range (database has %d pages)", n, s.size/pageSize))
	}
	offset := (int64(n) - 1) * pageSize
	if s.data != nil {
		return s.data[offset : offset+pageSize], nil
	}
	buf := make([]byte, pageSize)
	if _, err := s.file.ReadAt(buf, offset); err != nil {
		return nil, errors.NewIO(fmt.Sprintf("read page %d", n), s.path, err)
	}
	return buf, nil
}

// Close releases the underlying file handle. It is safe to call more
// than once and on stores that buffered their contents in memory.
func (s *Store) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	if err != nil {
		return errors.NewIO("close", s.path, err)
	}
	return nil
}
