package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewFileStore(filepath.Join(t.TempDir(), "nested", "credentials.json"))

	_, ok, err := s.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, KeyToken, "abc"))
	require.NoError(t, s.Set(ctx, KeyRefreshToken, "r1"))

	value, ok, err := s.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", value)

	require.NoError(t, s.Remove(ctx, KeyToken))
	_, ok, err = s.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.False(t, ok)

	// Other keys untouched by Remove
	value, ok, _ = s.Get(ctx, KeyRefreshToken)
	assert.True(t, ok)
	assert.Equal(t, "r1", value)

	// Removing a missing key is not an error
	require.NoError(t, s.Remove(ctx, "missing"))
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "credentials.json")

	first := NewFileStore(path)
	require.NoError(t, first.Set(ctx, KeyToken, "abc"))

	second := NewFileStore(path)
	value, ok, err := second.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", value)
}
