// Package diskfile provides typed binary file I/O for numio storages.
//
// A File is a random-access channel opened under a Unix-style mode string
// ("r", "w", "rw", optionally suffixed with "b" for binary mode). It reads
// and writes fixed-width scalars and bulk typed runs at the current
// position:
//
//	Scalar API:  WriteInt(v) / ReadInt(), and Byte/Char/Short/Long/Float/Double
//	Bulk API:    WriteInts([]int32) / ReadInts([]int32), plus Storage forms
//	Positioning: Seek(offset), SeekEnd(), Position(), Flush(), Close()
//
// Multi-byte values are encoded in the host's native byte order by default;
// BigEndianEncoding and LittleEndianEncoding select an explicit order for
// subsequent operations. In text mode (no "b" in the mode string) values
// are written as decimal tokens separated by a single space byte.
//
// Example usage:
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
//
// Failures surface as wrapped sentinel errors (ErrEndOfStream,
// ErrWriteFailure, ...). With SetQuiet(true) short-transfer failures are
// instead recorded on the File (poll HasError and ClearError) and the
// failing call returns a partial count or zero value with a nil error.
package diskfile
