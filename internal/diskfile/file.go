package diskfile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// backend is the resource a File owns: a positioned byte stream that can be
// synced and closed. *os.File satisfies it directly; memory files provide a
// trivial implementation.
type backend interface {
	io.Reader
	io.Writer
	io.Seeker
	io.Closer
	Sync() error
}

// File is a random-access channel over an exclusively owned byte resource.
// It reads and writes fixed-width scalars and bulk typed runs at the current
// position, with a selectable byte order, optional quiet-degrade error
// handling, and a text-mode spacing policy.
//
// A File is not safe for concurrent use: the position cursor and the
// quiet/spacing/order flags are mutable state with no internal locking.
// Closing a File from another goroutine while an operation is in flight is
// unsafe. No two Files may share one underlying handle.
type File struct {
	res     backend
	name    string
	mode    Mode
	order   binary.ByteOrder
	pos     int64
	quiet   bool
	spacing bool
	closed  bool
	lastErr error // short-transfer failure recorded under quiet mode
}

const defaultFilePerm = 0o644

// Open opens the file at path under the given mode string (see ParseMode).
// A newly opened File has position 0, native byte order, quiet off and
// auto-spacing on. Open-time failures are never subject to quiet mode.
func Open(path, mode string) (*File, error) {
	m, err := ParseMode(mode)
	if err != nil {
		return nil, err
	}

	flags := 0
	switch {
	case m.CanRead && m.CanWrite:
		flags = os.O_RDWR | os.O_CREATE
	case m.CanRead:
		flags = os.O_RDONLY
	default:
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}

	//nolint:gosec // G304: file path comes from the caller, which is the point of this API
	f, err := os.OpenFile(path, flags, defaultFilePerm)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		case errors.Is(err, fs.ErrPermission):
			return nil, fmt.Errorf("%w: %s", ErrPermission, path)
		default:
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
	}

	return &File{
		res:     f,
		name:    path,
		mode:    m,
		order:   defaultOrder(),
		spacing: true,
	}, nil
}

// Name returns the path the file was opened with.
func (f *File) Name() string {
	return f.name
}

// IsOpen reports whether the file has not been closed.
func (f *File) IsOpen() bool {
	return !f.closed
}

// IsReadable reports whether the file was opened with read capability.
func (f *File) IsReadable() bool {
	return f.mode.CanRead
}

// IsWritable reports whether the file was opened with write capability.
func (f *File) IsWritable() bool {
	return f.mode.CanWrite
}

// IsBinary reports whether the file is in binary mode.
func (f *File) IsBinary() bool {
	return f.mode.Binary
}

// IsQuiet reports whether quiet mode is enabled.
func (f *File) IsQuiet() bool {
	return f.quiet
}

// SetQuiet toggles quiet mode. When enabled, short-transfer failures are
// recorded on the file (see HasError) and the failing call returns the
// partial count or zero value with a nil error. Defaults to false.
func (f *File) SetQuiet(quiet bool) {
	f.quiet = quiet
}

// IsAutoSpacing reports whether the text-mode spacing policy is enabled.
func (f *File) IsAutoSpacing() bool {
	return f.spacing
}

// SetAutoSpacing toggles the text-mode spacing policy. Defaults to true on
// a newly opened file. Has no observable effect in binary mode.
func (f *File) SetAutoSpacing(spacing bool) {
	f.spacing = spacing
}

// NativeEndianEncoding selects the host CPU byte order for subsequent
// scalar and bulk operations. This is the default for a new File.
func (f *File) NativeEndianEncoding() {
	f.order = binary.NativeEndian
}

// BigEndianEncoding selects explicit big-endian byte order for subsequent
// scalar and bulk operations. Already-written bytes are not re-encoded.
func (f *File) BigEndianEncoding() {
	f.order = binary.BigEndian
}

// LittleEndianEncoding selects explicit little-endian byte order for
// subsequent scalar and bulk operations.
func (f *File) LittleEndianEncoding() {
	f.order = binary.LittleEndian
}

// HasError reports whether a failure was recorded under quiet mode.
func (f *File) HasError() bool {
	return f.lastErr != nil
}

// ClearError discards any failure recorded under quiet mode.
func (f *File) ClearError() {
	f.lastErr = nil
}

// Position returns the current byte offset.
func (f *File) Position() int64 {
	return f.pos
}

// Seek repositions the file to an absolute offset from the start. Seeking
// past the current end is legal: subsequent writes extend the resource and
// subsequent reads transfer zero elements.
func (f *File) Seek(offset int64) error {
	if err := f.ensureOpen(); err != nil {
		return err
	}
	if offset < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSeek, offset)
	}
	if _, err := f.res.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("seek failed: %w", err)
	}
	f.pos = offset
	return nil
}

// SeekEnd repositions the file to its current end.
func (f *File) SeekEnd() error {
	if err := f.ensureOpen(); err != nil {
		return err
	}
	pos, err := f.res.Seek(0, io.SeekEnd)
	if err != nil {
		return fmt.Errorf("seek failed: %w", err)
	}
	f.pos = pos
	return nil
}

// Flush forces buffered writes to the underlying resource. A no-op when
// nothing is pending.
func (f *File) Flush() error {
	if err := f.ensureOpen(); err != nil {
		return err
	}
	if err := f.res.Sync(); err != nil {
		return fmt.Errorf("flush failed: %w", err)
	}
	return nil
}

// Close releases the underlying resource exactly once. Closing an already
// closed File is a no-op. All other operations fail with ErrClosed after
// Close.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	return f.res.Close()
}

func (f *File) ensureOpen() error {
	if f.closed {
		return ErrClosed
	}
	return nil
}

// transferErr applies the quiet policy to a short-transfer failure: under
// quiet mode it is recorded on the file and the caller proceeds with a
// partial result; otherwise it is returned as-is.
func (f *File) transferErr(err error) error {
	if f.quiet {
		f.lastErr = err
		return nil
	}
	return err
}

// readFull reads len(buf) bytes at the current position, advancing the
// position by the number of bytes actually read. A clean end-of-stream
// returns the partial count with a nil error; callers decide whether a
// short transfer is a failure.
func (f *File) readFull(buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := f.res.Read(buf[total:])
		total += n
		if err != nil {
			f.pos += int64(total)
			if errors.Is(err, io.EOF) {
				return total, nil
			}
			return total, fmt.Errorf("read failed: %w", err)
		}
	}
	f.pos += int64(total)
	return total, nil
}

// write writes buf at the current position, advancing the position by the
// number of bytes accepted. Short writes surface as ErrWriteFailure.
func (f *File) write(buf []byte) (int, error) {
	n, err := f.res.Write(buf)
	f.pos += int64(n)
	if err != nil {
		return n, fmt.Errorf("%w: %v", ErrWriteFailure, err)
	}
	if n < len(buf) {
		return n, fmt.Errorf("%w: wrote %d of %d bytes", ErrWriteFailure, n, len(buf))
	}
	return n, nil
}

// rewind backs the position off by n bytes, discarding a partial transfer.
func (f *File) rewind(n int) {
	if n == 0 {
		return
	}
	f.pos -= int64(n)
	_, _ = f.res.Seek(f.pos, io.SeekStart)
}
