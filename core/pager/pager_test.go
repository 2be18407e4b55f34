package pager

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/FocuswithJustin/LiteWalk/core/errors"
	"github.com/ulikunitz/xz"
)

// buildDatabase returns a synthetic database image: a valid header on
// page 1 and filler pages each stamped with their page number.
func buildDatabase(t *testing.T, pageSize, pages int) []byte {
	t.Helper()
	data := make([]byte, pageSize*pages)
	copy(data, MagicString)
	raw := pageSize
	if pageSize == MaxPageSize {
		raw = 1
	}
	binary.BigEndian.PutUint16(data[OffsetPageSize:], uint16(raw))
	binary.BigEndian.PutUint32(data[OffsetTextEncoding:], EncodingUTF8)
	for p := 1; p < pages; p++ {
		for i := 0; i < pageSize; i++ {
			data[p*pageSize+i] = byte(p)
		}
	}
	return data
}

func writeDatabase(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write database: %v", err)
	}
	return path
}

func TestOpenParsesHeader(t *testing.T) {
	path := writeDatabase(t, buildDatabase(t, 4096, 3))
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer s.Close()

	if got := s.PageSize(); got != 4096 {
		t.Errorf("PageSize() = %d, want 4096", got)
	}
	if got := s.PageCount(); got != 3 {
		t.Errorf("PageCount() = %d, want 3", got)
	}
	if got := s.UsableSize(); got != 4096 {
		t.Errorf("UsableSize() = %d, want 4096", got)
	}
	if got := s.Header().TextEncoding; got != EncodingUTF8 {
		t.Errorf("TextEncoding = %d, want %d", got, EncodingUTF8)
	}
}

func TestOpenMaxPageSize(t *testing.T) {
	// 65536 is stored as the raw value 1.
	path := writeDatabase(t, buildDatabase(t, MaxPageSize, 1))
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer s.Close()
	if got := s.PageSize(); got != MaxPageSize {
		t.Errorf("PageSize() = %d, want %d", got, MaxPageSize)
	}
}

func TestOpenReservedSpace(t *testing.T) {
	data := buildDatabase(t, 4096, 1)
	data[OffsetReservedSpace] = 16
	s, err := Open(writeDatabase(t, data))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer s.Close()
	if got := s.UsableSize(); got != 4080 {
		t.Errorf("UsableSize() = %d, want 4080", got)
	}
}

func TestOpenRejectsBadHeader(t *testing.T) {
	tests := []struct {
		name   string
		mutate func([]byte)
	}{
		{"bad magic", func(d []byte) { d[0] = 'X' }},
		{"page size not a power of two", func(d []byte) {
			binary.BigEndian.PutUint16(d[OffsetPageSize:], 1000)
		}},
		{"page size too small", func(d []byte) {
			binary.BigEndian.PutUint16(d[OffsetPageSize:], 256)
		}},
		{"utf16 encoding", func(d []byte) {
			binary.BigEndian.PutUint32(d[OffsetTextEncoding:], EncodingUTF16LE)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := buildDatabase(t, 4096, 1)
			tt.mutate(data)
			s, err := Open(writeDatabase(t, data))
			if err == nil {
				s.Close()
				t.Fatal("Open() expected error")
			}
			if !errors.Is(err, errors.ErrInvalidFormat) {
				t.Errorf("Open() error = %v, want ErrInvalidFormat", err)
			}
		})
	}
}

func TestOpenTruncatedFile(t *testing.T) {
	s, err := Open(writeDatabase(t, []byte(MagicString)))
	if err == nil {
		s.Close()
		t.Fatal("Open() expected error")
	}
	if !errors.Is(err, errors.ErrInvalidFormat) {
		t.Errorf("Open() error = %v, want ErrInvalidFormat", err)
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.db"))
	if err == nil {
		t.Fatal("Open() expected error")
	}
	if !errors.Is(err, errors.ErrIO) {
		t.Errorf("Open() error = %v, want ErrIO", err)
	}
}

func TestPage(t *testing.T) {
	s, err := Open(writeDatabase(t, buildDatabase(t, 512, 3)))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer s.Close()

	page1, err := s.Page(1)
	if err != nil {
		t.Fatalf("Page(1) error = %v", err)
	}
	if !bytes.HasPrefix(page1, []byte(MagicString)) {
		t.Error("page 1 should begin with the database header")
	}

	page2, err := s.Page(2)
	if err != nil {
		t.Fatalf("Page(2) error = %v", err)
	}
	if len(page2) != 512 || page2[0] != 1 || page2[511] != 1 {
		t.Errorf("Page(2) = %d bytes starting %#x", len(page2), page2[0])
	}

	for _, n := range []uint32{0, 4, 100} {
		if _, err := s.Page(n); !errors.Is(err, errors.ErrIO) {
			t.Errorf("Page(%d) error = %v, want ErrIO", n, err)
		}
	}
}

func TestOpenXZ(t *testing.T) {
	data := buildDatabase(t, 512, 2)

	var compressed bytes.Buffer
	xzw, err := xz.NewWriter(&compressed)
	if err != nil {
		t.Fatalf("xz.NewWriter() error = %v", err)
	}
	if _, err := xzw.Write(data); err != nil {
		t.Fatalf("xz write error = %v", err)
	}
	if err := xzw.Close(); err != nil {
		t.Fatalf("xz close error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "snapshot.db.xz")
	if err := os.WriteFile(path, compressed.Bytes(), 0644); err != nil {
		t.Fatalf("failed to write archive: %v", err)
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if got := s.PageCount(); got != 2 {
		t.Errorf("PageCount() = %d, want 2", got)
	}
	page2, err := s.Page(2)
	if err != nil {
		t.Fatalf("Page(2) error = %v", err)
	}
	if page2[0] != 1 {
		t.Errorf("Page(2)[0] = %#x, want 0x01", page2[0])
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestCloseIdempotent(t *testing.T) {
	s, err := Open(writeDatabase(t, buildDatabase(t, 512, 1)))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("first Close() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
