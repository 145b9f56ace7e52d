package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileBinaryStorage(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileBinaryStorage(t.TempDir())
	require.NoError(t, err)

	_, err = s.GetBinary(ctx, 1, testFolderID)
	assert.ErrorIs(t, err, ErrBinaryNotFound)

	require.NoError(t, s.PutBinary(ctx, 1, testFolderID, "image/png", []byte("v1")))
	require.NoError(t, s.PutBinary(ctx, 1, testFolderID, "image/png", []byte("v2")))

	data, err := s.GetBinary(ctx, 1, testFolderID)
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), data)

	// owners do not share binaries
	_, err = s.GetBinary(ctx, 2, testFolderID)
	assert.ErrorIs(t, err, ErrBinaryNotFound)

	require.NoError(t, s.DeleteBinary(ctx, 1, testFolderID))
	require.NoError(t, s.DeleteBinary(ctx, 1, testFolderID))
	_, err = s.GetBinary(ctx, 1, testFolderID)
	assert.ErrorIs(t, err, ErrBinaryNotFound)
}

func TestFileBinaryStorage_RejectsPathLikeIDs(t *testing.T) {
	s, err := NewFileBinaryStorage(t.TempDir())
	require.NoError(t, err)

	err = s.PutBinary(context.Background(), 1, "../../etc/passwd", "", []byte("x"))
	assert.ErrorIs(t, err, ErrBinaryNotFound)
}
