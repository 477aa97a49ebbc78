package archive

import (
	"fmt"
	"sort"
)

// Validation limits for security and resource protection.
const (
	MaxHeaderSize     = 100 * 1024 * 1024 // 100MB - maximum header size
	MaxStorageCount   = 100_000           // Maximum number of storages in a file
	MaxStorageNameLen = 4096              // Maximum storage name length
)

// ValidationLevel controls the strictness of validation.
type ValidationLevel int

const (
	// ValidationStrict performs all validation checks (default, recommended for production).
	ValidationStrict ValidationLevel = iota
	// ValidationNormal performs basic validation checks only.
	ValidationNormal
	// ValidationNone skips validation (dangerous! Use only with trusted input).
	ValidationNone
)

// ValidateStorageOffsets checks for overlapping storage offsets and
// out-of-bounds access. Malformed files must not be able to alias one
// storage's bytes into another or read past the data section.
func ValidateStorageOffsets(storages []StorageMeta, dataSize int64) error {
	if len(storages) > MaxStorageCount {
		return &ValidationError{
			Type:    "too_many_storages",
			Details: fmt.Sprintf("got %d, max %d", len(storages), MaxStorageCount),
		}
	}

	// Sort by offset for efficient overlap detection.
	sorted := make([]StorageMeta, len(storages))
	copy(sorted, storages)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})

	for i, s := range sorted {
		if s.Offset < 0 || s.Size < 0 {
			return &ValidationError{
				Type:    "negative_offset",
				Storage: s.Name,
				Details: fmt.Sprintf("offset=%d, size=%d (negative values not allowed)", s.Offset, s.Size),
			}
		}

		if s.Offset+s.Size > dataSize {
			return &ValidationError{
				Type:    "out_of_bounds",
				Storage: s.Name,
				Details: fmt.Sprintf("offset=%d, size=%d, data section=%d bytes", s.Offset, s.Size, dataSize),
			}
		}

		if i > 0 {
			prev := sorted[i-1]
			if prev.Offset+prev.Size > s.Offset {
				return &ValidationError{
					Type:     "offset_overlap",
					Storage:  prev.Name,
					Storage2: s.Name,
					Details:  fmt.Sprintf("[%d, %d) overlaps [%d, %d)", prev.Offset, prev.Offset+prev.Size, s.Offset, s.Offset+s.Size),
				}
			}
		}
	}

	return nil
}

// ValidateStorageMeta checks per-storage metadata consistency: name
// limits, a known dtype and size == length * width.
func ValidateStorageMeta(storages []StorageMeta) error {
	for _, s := range storages {
		if len(s.Name) == 0 || len(s.Name) > MaxStorageNameLen {
			return &ValidationError{
				Type:    "invalid_name",
				Storage: s.Name,
				Details: fmt.Sprintf("name length %d, max %d", len(s.Name), MaxStorageNameLen),
			}
		}

		dtype, ok := dataTypeOf(s)
		if !ok {
			return &ValidationError{
				Type:    "unknown_dtype",
				Storage: s.Name,
				Details: s.DType,
			}
		}

		if s.Length < 0 || int64(s.Length)*int64(dtype.Size()) != s.Size {
			return &ValidationError{
				Type:    "size_mismatch",
				Storage: s.Name,
				Details: fmt.Sprintf("length=%d, dtype=%s, size=%d", s.Length, dtype, s.Size),
			}
		}
	}
	return nil
}

// ValidateHeader validates a parsed header against the actual data section
// size at the requested strictness level.
func ValidateHeader(header *Header, dataSize int64, level ValidationLevel) error {
	if level == ValidationNone {
		return nil
	}

	if err := ValidateStorageMeta(header.Storages); err != nil {
		return err
	}

	if level == ValidationStrict {
		if err := ValidateStorageOffsets(header.Storages, dataSize); err != nil {
			return err
		}
	}

	return nil
}
