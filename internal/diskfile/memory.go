package diskfile

import (
	"fmt"
	"io"
)

// memBuffer is an in-memory growable byte resource with file semantics:
// positioned reads and writes, seeking past the end followed by a write
// zero-fills the gap. Sync and Close are no-ops.
type memBuffer struct {
	data []byte
	pos  int64
}

func (m *memBuffer) Read(p []byte) (int, error) {
	if m.pos >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[m.pos:])
	m.pos += int64(n)
	return n, nil
}

func (m *memBuffer) Write(p []byte) (int, error) {
	if end := m.pos + int64(len(p)); end > int64(len(m.data)) {
		grown := make([]byte, end)
		copy(grown, m.data)
		m.data = grown
	}
	n := copy(m.data[m.pos:], p)
	m.pos += int64(n)
	return n, nil
}

func (m *memBuffer) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		m.pos = offset
	case io.SeekCurrent:
		m.pos += offset
	case io.SeekEnd:
		m.pos = int64(len(m.data)) + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}
	if m.pos < 0 {
		m.pos = 0
	}
	return m.pos, nil
}

func (m *memBuffer) Sync() error { return nil }

func (m *memBuffer) Close() error { return nil }

// NewMemoryFile creates a File over an in-memory buffer with the same
// channel semantics as a disk file. The mode string is parsed as for Open;
// there is no pre-existence requirement for "r". Flush is a no-op.
func NewMemoryFile(mode string) (*File, error) {
	m, err := ParseMode(mode)
	if err != nil {
		return nil, err
	}
	return &File{
		res:     &memBuffer{},
		name:    "<memory>",
		mode:    m,
		order:   defaultOrder(),
		spacing: true,
	}, nil
}

// Bytes returns the current contents of a memory-backed file, or nil for a
// disk-backed one. The returned slice aliases the file's buffer.
func (f *File) Bytes() []byte {
	if m, ok := f.res.(*memBuffer); ok {
		return m.data
	}
	return nil
}
