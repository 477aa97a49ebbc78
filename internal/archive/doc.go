// Package archive provides a container format for named numio storages.
//
// An archive is a sequence of typed storages with a JSON header, written
// through the diskfile layer:
//
//	Format Structure:
//	  [4 bytes:  Magic "NUMI"]
//	  [4 bytes:  Version (uint32 LE)]
//	  [4 bytes:  Flags (uint32 LE)]
//	  [4 bytes:  Reserved]
//	  [8 bytes:  Header Size (uint64 LE)]
//	  [8 bytes:  Data Size (uint64 LE)]
//	  [32 bytes: SHA-256 checksum of the data section]
//	  [Header: JSON metadata]
//	  [Storage data: little-endian elements, 64-byte aligned]
//
// The header carries per-storage {name, dtype, length, offset, size},
// free-form string metadata, and a file id generated at write time.
// Readers validate storage bounds and offsets (see ValidationLevel) and
// the data checksum before returning.
//
// Example usage:
//
//	w, _ := archive.NewWriter("digits.numio")
//	w.WriteStorages(map[string]*storage.Storage{
//	    "labels": storage.Of[int64](7, 2, 1),
//	}, nil)
//	w.Close()
//
//	r, _ := archive.NewReader("digits.numio")
//	labels, _ := r.ReadStorage("labels")
//	r.Close()
package archive
