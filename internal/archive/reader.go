package archive

import (
	"encoding/binary"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/numio-ml/numio/internal/diskfile"
	"github.com/numio-ml/numio/internal/storage"
)

// Reader reads named storages from a numio archive.
type Reader struct {
	file       *diskfile.File
	header     Header
	flags      uint32
	dataOffset int64 // Offset where storage data starts
	dataSize   int64 // Size of the data section
	checksum   [32]byte
	opts       ReaderOptions
}

// ReaderOptions configures the behavior of Reader.
type ReaderOptions struct {
	SkipChecksumValidation bool            // Skip checksum validation (faster but less safe)
	ValidationLevel        ValidationLevel // Validation strictness level
}

// NewReader creates an archive reader with default options (strict validation).
func NewReader(path string) (*Reader, error) {
	return NewReaderWithOptions(path, ReaderOptions{
		ValidationLevel: ValidationStrict,
	})
}

// NewReaderWithOptions creates an archive reader with custom options.
func NewReaderWithOptions(path string, opts ReaderOptions) (*Reader, error) {
	file, err := diskfile.Open(path, "rb")
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	file.LittleEndianEncoding()

	r := &Reader{
		file: file,
		opts: opts,
	}

	if err := r.parseHeader(); err != nil {
		_ = file.Close() // Best effort close on error
		return nil, fmt.Errorf("failed to parse header: %w", err)
	}

	if err := ValidateHeader(&r.header, r.dataSize, opts.ValidationLevel); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if !opts.SkipChecksumValidation {
		if err := r.validateChecksum(); err != nil {
			_ = file.Close()
			return nil, err
		}
	}

	return r, nil
}

func (r *Reader) parseHeader() error {
	fixed := make([]byte, FixedHeaderSize)
	if n, err := r.file.ReadBytes(fixed); err != nil || n < FixedHeaderSize {
		return fmt.Errorf("%w: short fixed header", ErrInvalidMagic)
	}

	if string(fixed[0:4]) != MagicBytes {
		return ErrInvalidMagic
	}

	version := binary.LittleEndian.Uint32(fixed[4:8])
	if version != FormatVersion {
		return fmt.Errorf("%w: got %d, expected %d", ErrUnsupportedVersion, version, FormatVersion)
	}

	r.flags = binary.LittleEndian.Uint32(fixed[8:12])
	headerSize := binary.LittleEndian.Uint64(fixed[16:24])
	declaredSize := binary.LittleEndian.Uint64(fixed[24:32])
	copy(r.checksum[:], fixed[ChecksumOffset:ChecksumOffset+ChecksumSize])

	if headerSize > MaxHeaderSize {
		return ErrHeaderTooLarge
	}

	headerBytes := make([]byte, headerSize)
	if n, err := r.file.ReadBytes(headerBytes); err != nil || uint64(n) < headerSize {
		return fmt.Errorf("failed to read header JSON: %w", diskfile.ErrEndOfStream)
	}

	if err := json.Unmarshal(headerBytes, &r.header); err != nil {
		return fmt.Errorf("failed to parse header JSON: %w", err)
	}

	//nolint:gosec // G115: headerSize is bounded by MaxHeaderSize
	currentPos := int64(FixedHeaderSize) + int64(headerSize)
	padding := (DataAlignment - (currentPos % DataAlignment)) % DataAlignment
	r.dataOffset = currentPos + padding

	// The declared size is untrusted input; bound it by the bytes actually
	// present after the data offset before anything allocates from it.
	if err := r.file.SeekEnd(); err != nil {
		return fmt.Errorf("failed to determine file size: %w", err)
	}
	avail := r.file.Position() - r.dataOffset
	if avail < 0 {
		avail = 0
	}
	if declaredSize > uint64(avail) {
		return fmt.Errorf("%w: declared %d bytes, file holds %d", ErrInvalidDataSize, declaredSize, avail)
	}
	r.dataSize = int64(declaredSize)

	return nil
}

func (r *Reader) validateChecksum() error {
	if err := r.file.Seek(r.dataOffset); err != nil {
		return fmt.Errorf("failed to seek to storage data: %w", err)
	}
	data := make([]byte, r.dataSize)
	if n, err := r.file.ReadBytes(data); err != nil || int64(n) < r.dataSize {
		return fmt.Errorf("failed to read storage data for checksum: %w", diskfile.ErrEndOfStream)
	}
	if ComputeChecksum(data) != r.checksum {
		return ErrChecksumMismatch
	}
	return nil
}

// Header returns the file header.
func (r *Reader) Header() Header {
	return r.header
}

// Metadata returns the metadata map from the header.
func (r *Reader) Metadata() map[string]string {
	return r.header.Metadata
}

// StorageNames returns a list of all storage names in the file.
func (r *Reader) StorageNames() []string {
	names := make([]string, len(r.header.Storages))
	for i, meta := range r.header.Storages {
		names[i] = meta.Name
	}
	return names
}

// StorageInfo returns information about a specific storage.
func (r *Reader) StorageInfo(name string) (*StorageMeta, error) {
	for _, meta := range r.header.Storages {
		if meta.Name == name {
			return &meta, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrStorageNotFound, name)
}

// ReadStorage reads one storage by name into a freshly allocated Storage.
func (r *Reader) ReadStorage(name string) (*storage.Storage, error) {
	if !r.file.IsOpen() {
		return nil, diskfile.ErrClosed
	}

	meta, err := r.StorageInfo(name)
	if err != nil {
		return nil, err
	}

	dtype, ok := dataTypeOf(*meta)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDType, meta.DType)
	}

	s, err := storage.New(dtype, meta.Length)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate storage: %w", err)
	}

	if err := r.file.Seek(r.dataOffset + meta.Offset); err != nil {
		return nil, fmt.Errorf("failed to seek to storage data: %w", err)
	}
	n, err := r.file.ReadStorage(s)
	if err != nil {
		return nil, fmt.Errorf("failed to read storage %s: %w", name, err)
	}
	if n < meta.Length {
		return nil, fmt.Errorf("%w: storage %s: read %d of %d elements", diskfile.ErrEndOfStream, name, n, meta.Length)
	}

	return s, nil
}

// ReadAll reads every storage in the file, keyed by name.
func (r *Reader) ReadAll() (map[string]*storage.Storage, error) {
	if !r.file.IsOpen() {
		return nil, diskfile.ErrClosed
	}

	out := make(map[string]*storage.Storage, len(r.header.Storages))
	for _, meta := range r.header.Storages {
		s, err := r.ReadStorage(meta.Name)
		if err != nil {
			return nil, err
		}
		out[meta.Name] = s
	}
	return out, nil
}

// Close closes the reader and the underlying file. Safe to call twice.
func (r *Reader) Close() error {
	return r.file.Close()
}
