package archive

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrChecksumMismatch   = errors.New("checksum mismatch: file may be corrupted")
	ErrOffsetOverlap      = errors.New("storage offsets overlap")
	ErrOutOfBounds        = errors.New("storage extends beyond data section")
	ErrNegativeOffset     = errors.New("negative offset or size")
	ErrTooManyStorages    = errors.New("too many storages in file")
	ErrStorageNameTooLong = errors.New("storage name too long")
	ErrHeaderTooLarge     = errors.New("header exceeds maximum size")
	ErrInvalidMagic       = errors.New("invalid magic bytes")
	ErrInvalidDataSize    = errors.New("declared data size exceeds file size")
	ErrUnsupportedVersion = errors.New("unsupported format version")
	ErrUnknownDType       = errors.New("unknown storage dtype")
	ErrStorageNotFound    = errors.New("storage not found")
)

// ValidationError provides detailed information about validation failures.
type ValidationError struct {
	Type     string // Type of error (e.g., "offset_overlap", "out_of_bounds")
	Storage  string // Primary storage name involved
	Storage2 string // Secondary storage name (for overlap errors)
	Details  string // Additional details
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Storage2 != "" {
		return fmt.Sprintf("%s: storages %q and %q: %s", e.Type, e.Storage, e.Storage2, e.Details)
	}
	if e.Storage != "" {
		return fmt.Sprintf("%s: storage %q: %s", e.Type, e.Storage, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Details)
}
