package diskfile

import "errors"

// Common errors.
var (
	ErrInvalidMode  = errors.New("invalid mode string")
	ErrNotFound     = errors.New("file not found")
	ErrPermission   = errors.New("permission denied")
	ErrClosed       = errors.New("file is closed")
	ErrInvalidSeek  = errors.New("invalid seek offset")
	ErrEndOfStream  = errors.New("unexpected end of stream")
	ErrInvalidToken = errors.New("malformed text token")
	ErrWriteFailure = errors.New("write failed")
	ErrNotReadable  = errors.New("file not opened for reading")
	ErrNotWritable  = errors.New("file not opened for writing")
)
