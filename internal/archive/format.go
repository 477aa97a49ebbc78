package archive

import (
	"time"

	"github.com/numio-ml/numio/internal/storage"
)

const numioVersion = "0.1.0" // Current numio version

// Format constants.
const (
	MagicBytes      = "NUMI"
	FormatVersion   = 1
	FixedHeaderSize = 64   // magic + version + flags + reserved + sizes + checksum
	DataAlignment   = 64   // Align storage data to 64 bytes
	ChecksumSize    = 32   // SHA-256 checksum size (32 bytes)
	ChecksumOffset  = 0x20 // Checksum offset in the fixed header
)

// Flags for the archive format.
const (
	FlagHasMetadata uint32 = 1 << 0 // bit 0: custom metadata included
)

// Header represents the JSON header in an archive file.
type Header struct {
	FormatVersion int               `json:"format_version"` // Version of the archive format
	NumioVersion  string            `json:"numio_version"`  // Version of numio that created this file
	FileID        string            `json:"file_id"`        // Unique id assigned at write time
	CreatedAt     time.Time         `json:"created_at"`     // When the file was created
	Storages      []StorageMeta     `json:"storages"`       // Storage metadata
	Metadata      map[string]string `json:"metadata"`       // Custom metadata
}

// StorageMeta describes one storage in the archive.
type StorageMeta struct {
	Name   string `json:"name"`   // Storage name (e.g., "train.labels")
	DType  string `json:"dtype"`  // Element type (e.g., "float32", "int64")
	Length int    `json:"length"` // Number of elements
	Offset int64  `json:"offset"` // Offset in the data section (bytes from start of storage data)
	Size   int64  `json:"size"`   // Size in bytes
}

// dataTypeOf resolves a StorageMeta dtype string, reporting whether it
// names a supported element type.
func dataTypeOf(meta StorageMeta) (storage.DataType, bool) {
	return storage.ParseDataType(meta.DType)
}
