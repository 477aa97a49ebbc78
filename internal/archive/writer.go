package archive

import (
	"encoding/binary"
	"fmt"
	"sort"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/numio-ml/numio/internal/diskfile"
	"github.com/numio-ml/numio/internal/storage"
)

// Writer writes named storages in the numio archive format.
type Writer struct {
	file *diskfile.File
}

// NewWriter creates a new archive writer, truncating any existing file at
// path. The archive's fixed fields are written little-endian so files are
// portable across hosts.
func NewWriter(path string) (*Writer, error) {
	file, err := diskfile.Open(path, "wb")
	if err != nil {
		return nil, fmt.Errorf("failed to create archive: %w", err)
	}
	file.LittleEndianEncoding()
	return &Writer{file: file}, nil
}

// WriteStorages writes all given storages and optional metadata as one
// archive. Storages are laid out in name order so identical inputs produce
// identical files apart from the file id and timestamp.
func (w *Writer) WriteStorages(storages map[string]*storage.Storage, metadata map[string]string) error {
	if !w.file.IsOpen() {
		return diskfile.ErrClosed
	}

	header := Header{
		FormatVersion: FormatVersion,
		NumioVersion:  numioVersion,
		FileID:        uuid.NewString(),
		CreatedAt:     time.Now().UTC(),
		Storages:      make([]StorageMeta, 0, len(storages)),
		Metadata:      metadata,
	}
	if header.Metadata == nil {
		header.Metadata = make(map[string]string)
	}

	order := make([]string, 0, len(storages))
	for name := range storages {
		order = append(order, name)
	}
	sort.Strings(order)

	var currentOffset int64
	for _, name := range order {
		s := storages[name]
		size := int64(s.ByteSize())
		header.Storages = append(header.Storages, StorageMeta{
			Name:   name,
			DType:  s.DType().String(),
			Length: s.Len(),
			Offset: currentOffset,
			Size:   size,
		})
		currentOffset += size
	}

	// Stage the data section through a memory file so the checksum covers
	// the bytes exactly as they will appear on disk (little-endian).
	mem, err := diskfile.NewMemoryFile("wb")
	if err != nil {
		return err
	}
	mem.LittleEndianEncoding()
	for _, name := range order {
		if err := mem.WriteStorage(storages[name]); err != nil {
			return fmt.Errorf("failed to encode storage %s: %w", name, err)
		}
	}
	dataBuf := mem.Bytes()
	checksum := ComputeChecksum(dataBuf)

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}
	headerSize := uint64(len(headerJSON))
	if headerSize > MaxHeaderSize {
		return ErrHeaderTooLarge
	}

	// Fixed header (64 bytes).
	fixed := make([]byte, FixedHeaderSize)
	copy(fixed[0:4], MagicBytes)
	binary.LittleEndian.PutUint32(fixed[4:8], uint32(FormatVersion))
	flags := uint32(0)
	if len(header.Metadata) > 0 {
		flags |= FlagHasMetadata
	}
	binary.LittleEndian.PutUint32(fixed[8:12], flags)
	// 0x0C-0x0F reserved, zero from make()
	binary.LittleEndian.PutUint64(fixed[16:24], headerSize)
	binary.LittleEndian.PutUint64(fixed[24:32], uint64(currentOffset))
	copy(fixed[ChecksumOffset:ChecksumOffset+ChecksumSize], checksum[:])

	if err := w.file.WriteBytes(fixed); err != nil {
		return fmt.Errorf("failed to write fixed header: %w", err)
	}
	if err := w.file.WriteBytes(headerJSON); err != nil {
		return fmt.Errorf("failed to write header JSON: %w", err)
	}

	// Pad so the storage data starts on an alignment boundary.
	//nolint:gosec // G115: headerSize is bounded by MaxHeaderSize
	currentPos := int64(FixedHeaderSize) + int64(headerSize)
	padding := (DataAlignment - (currentPos % DataAlignment)) % DataAlignment
	if padding > 0 {
		if err := w.file.WriteBytes(make([]byte, padding)); err != nil {
			return fmt.Errorf("failed to write padding: %w", err)
		}
	}

	if err := w.file.WriteBytes(dataBuf); err != nil {
		return fmt.Errorf("failed to write storage data: %w", err)
	}

	return w.file.Flush()
}

// Close closes the writer and the underlying file. Safe to call twice.
func (w *Writer) Close() error {
	return w.file.Close()
}
