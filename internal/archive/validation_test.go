package archive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStorageOffsetsOK(t *testing.T) {
	storages := []StorageMeta{
		{Name: "a", DType: "int32", Length: 2, Offset: 0, Size: 8},
		{Name: "b", DType: "uint8", Length: 4, Offset: 8, Size: 4},
	}
	assert.NoError(t, ValidateStorageOffsets(storages, 12))
}

func TestValidateStorageOffsetsOverlap(t *testing.T) {
	storages := []StorageMeta{
		{Name: "a", DType: "int32", Length: 2, Offset: 0, Size: 8},
		{Name: "b", DType: "int32", Length: 2, Offset: 4, Size: 8},
	}
	err := ValidateStorageOffsets(storages, 12)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "offset_overlap", verr.Type)
	assert.Equal(t, "a", verr.Storage)
	assert.Equal(t, "b", verr.Storage2)
}

func TestValidateStorageOffsetsOutOfBounds(t *testing.T) {
	storages := []StorageMeta{
		{Name: "a", DType: "float64", Length: 2, Offset: 0, Size: 16},
	}
	err := ValidateStorageOffsets(storages, 8)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "out_of_bounds", verr.Type)
}

func TestValidateStorageOffsetsNegative(t *testing.T) {
	storages := []StorageMeta{
		{Name: "a", DType: "int8", Length: 1, Offset: -1, Size: 1},
	}
	err := ValidateStorageOffsets(storages, 8)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "negative_offset", verr.Type)
}

func TestValidateStorageMeta(t *testing.T) {
	assert.NoError(t, ValidateStorageMeta([]StorageMeta{
		{Name: "ok", DType: "int16", Length: 3, Size: 6},
	}))

	err := ValidateStorageMeta([]StorageMeta{{Name: "", DType: "int16", Length: 1, Size: 2}})
	require.Error(t, err)

	err = ValidateStorageMeta([]StorageMeta{{Name: "x", DType: "int13", Length: 1, Size: 2}})
	require.Error(t, err)

	err = ValidateStorageMeta([]StorageMeta{{Name: "x", DType: "int16", Length: 2, Size: 3}})
	require.Error(t, err)
}

func TestValidateHeaderLevels(t *testing.T) {
	header := &Header{
		Storages: []StorageMeta{
			{Name: "a", DType: "int32", Length: 4, Offset: 0, Size: 16},
		},
	}

	// Out of bounds only caught at strict level.
	assert.Error(t, ValidateHeader(header, 8, ValidationStrict))
	assert.NoError(t, ValidateHeader(header, 8, ValidationNormal))
	assert.NoError(t, ValidateHeader(header, 8, ValidationNone))

	// Broken meta caught at normal level, ignored at none.
	bad := &Header{
		Storages: []StorageMeta{
			{Name: "a", DType: "wat", Length: 4, Offset: 0, Size: 16},
		},
	}
	assert.Error(t, ValidateHeader(bad, 100, ValidationNormal))
	assert.NoError(t, ValidateHeader(bad, 100, ValidationNone))
}
