package archive

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/numio-ml/numio/internal/storage"
)

func writeTestArchive(t *testing.T, path string) map[string]*storage.Storage {
	t.Helper()

	storages := map[string]*storage.Storage{
		"weights": storage.Of[float32](1.5, -2.5, 3.5, 0.25),
		"labels":  storage.Of[int64](7, 2, 1),
		"mask":    storage.Of[uint8](1, 0, 1, 1, 0),
	}

	w, err := NewWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.WriteStorages(storages, map[string]string{"dataset": "digits"}))
	require.NoError(t, w.Close())

	return storages
}

func TestArchiveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roundtrip.numio")
	want := writeTestArchive(t, path)

	r, err := NewReader(path)
	require.NoError(t, err)
	defer r.Close()

	header := r.Header()
	assert.Equal(t, FormatVersion, header.FormatVersion)
	assert.Equal(t, numioVersion, header.NumioVersion)
	assert.False(t, header.CreatedAt.IsZero())

	_, err = uuid.Parse(header.FileID)
	assert.NoError(t, err, "file id is a valid uuid")

	assert.Equal(t, "digits", r.Metadata()["dataset"])
	assert.ElementsMatch(t, []string{"labels", "mask", "weights"}, r.StorageNames())

	got, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, want["weights"].AsFloat32(), got["weights"].AsFloat32())
	assert.Equal(t, want["labels"].AsInt64(), got["labels"].AsInt64())
	assert.Equal(t, want["mask"].AsUint8(), got["mask"].AsUint8())
}

func TestArchiveStorageInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "info.numio")
	writeTestArchive(t, path)

	r, err := NewReader(path)
	require.NoError(t, err)
	defer r.Close()

	meta, err := r.StorageInfo("labels")
	require.NoError(t, err)
	assert.Equal(t, "int64", meta.DType)
	assert.Equal(t, 3, meta.Length)
	assert.Equal(t, int64(24), meta.Size)

	_, err = r.StorageInfo("nope")
	assert.ErrorIs(t, err, ErrStorageNotFound)

	_, err = r.ReadStorage("nope")
	assert.ErrorIs(t, err, ErrStorageNotFound)
}

func TestArchiveChecksumMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.numio")
	writeTestArchive(t, path)

	// Flip one bit in the last data byte.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0x01
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	_, err = NewReader(path)
	assert.ErrorIs(t, err, ErrChecksumMismatch)

	// Skipping validation lets the corrupted file open.
	r, err := NewReaderWithOptions(path, ReaderOptions{
		SkipChecksumValidation: true,
		ValidationLevel:        ValidationStrict,
	})
	require.NoError(t, err)
	require.NoError(t, r.Close())
}

func TestArchiveForgedDataSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forged.numio")
	writeTestArchive(t, path)

	// All-ones declared size would go negative as an int64.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	for i := 24; i < 32; i++ {
		raw[i] = 0xFF
	}
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	_, err = NewReader(path)
	assert.ErrorIs(t, err, ErrInvalidDataSize)

	// A large positive forgery is rejected the same way instead of
	// driving a huge allocation.
	binary.LittleEndian.PutUint64(raw[24:32], 1<<40)
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	_, err = NewReader(path)
	assert.ErrorIs(t, err, ErrInvalidDataSize)
}

func TestArchiveInvalidMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.numio")
	require.NoError(t, os.WriteFile(path, make([]byte, 128), 0o644))

	_, err := NewReader(path)
	assert.ErrorIs(t, err, ErrInvalidMagic)
}

func TestArchiveTruncated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.numio")
	require.NoError(t, os.WriteFile(path, []byte("NUMI"), 0o644))

	_, err := NewReader(path)
	assert.Error(t, err)
}

func TestArchiveEmptyStorages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.numio")

	w, err := NewWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.WriteStorages(map[string]*storage.Storage{}, nil))
	require.NoError(t, w.Close())

	r, err := NewReader(path)
	require.NoError(t, err)
	defer r.Close()

	assert.Empty(t, r.StorageNames())
	got, err := r.ReadAll()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestWriterCloseIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "close.numio")

	w, err := NewWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())

	err = w.WriteStorages(map[string]*storage.Storage{}, nil)
	assert.Error(t, err)
}
