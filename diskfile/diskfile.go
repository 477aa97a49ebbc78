// Copyright 2025 The Numio Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package diskfile provides the public API for numio typed file I/O.
//
// A File is a random-access channel over a disk file or an in-memory
// buffer, opened under a Unix-style mode string ("r", "w", "rw", optionally
// suffixed with "b" for binary mode). It reads and writes fixed-width
// scalars and bulk typed runs at the current position with a selectable
// byte order.
//
// Example:
//
//	f, err := diskfile.Open("test.dat", "rwb")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//
//	f.WriteInt(13)
//	f.WriteInt(17)
//	f.Seek(0)
//	a, _ := f.ReadInt() // 13
//	b, _ := f.ReadInt() // 17
package diskfile

import (
	"github.com/numio-ml/numio/internal/diskfile"
)

// File is the random-access typed I/O channel.
type File = diskfile.File

// Mode is the capability set derived from an open-mode string.
type Mode = diskfile.Mode

// Open opens the file at path under the given mode string.
func Open(path, mode string) (*File, error) {
	return diskfile.Open(path, mode)
}

// NewMemoryFile creates a File over an in-memory buffer.
func NewMemoryFile(mode string) (*File, error) {
	return diskfile.NewMemoryFile(mode)
}

// ParseMode parses a mode string into a capability set.
func ParseMode(s string) (Mode, error) {
	return diskfile.ParseMode(s)
}

// Common errors.
var (
	ErrInvalidMode  = diskfile.ErrInvalidMode
	ErrNotFound     = diskfile.ErrNotFound
	ErrPermission   = diskfile.ErrPermission
	ErrClosed       = diskfile.ErrClosed
	ErrInvalidSeek  = diskfile.ErrInvalidSeek
	ErrEndOfStream  = diskfile.ErrEndOfStream
	ErrInvalidToken = diskfile.ErrInvalidToken
	ErrWriteFailure = diskfile.ErrWriteFailure
	ErrNotReadable  = diskfile.ErrNotReadable
	ErrNotWritable  = diskfile.ErrNotWritable
)
