package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dborovskis/filevault/internal/common"
)

func TestDiskVolume_SaveThenLoad(t *testing.T) {
	v := NewDiskVolume(filepath.Join(t.TempDir(), "volume"))
	ctx := context.Background()

	ref, err := v.Save(ctx, []byte("hello"))
	require.NoError(t, err)
	require.True(t, filepath.IsAbs(ref), "reference should be an absolute path")

	got, err := v.Load(ctx, ref, "")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), got)
}

func TestDiskVolume_SaveGeneratesFreshReferences(t *testing.T) {
	v := NewDiskVolume(t.TempDir())
	ctx := context.Background()

	a, err := v.Save(ctx, []byte("one"))
	require.NoError(t, err)
	b, err := v.Save(ctx, []byte("two"))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestDiskVolume_CreatesRootOnDemand(t *testing.T) {
	root := filepath.Join(t.TempDir(), "deep", "volume")
	v := NewDiskVolume(root)

	_, err := v.Save(context.Background(), []byte("x"))
	require.NoError(t, err)

	fi, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, fi.IsDir())
}

func TestDiskVolume_LoadMissingIsNotFound(t *testing.T) {
	v := NewDiskVolume(t.TempDir())

	_, err := v.Load(context.Background(), filepath.Join(t.TempDir(), "nope"), "")
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestDiskVolume_LoadSizeVariant(t *testing.T) {
	v := NewDiskVolume(t.TempDir())
	ctx := context.Background()

	ref, err := v.Save(ctx, []byte("full"))
	require.NoError(t, err)

	// The worker writes variants next to the original.
	require.NoError(t, os.WriteFile(ref+"_100", []byte("small"), 0o660))

	got, err := v.Load(ctx, ref, "100")
	require.NoError(t, err)
	assert.Equal(t, []byte("small"), got)

	_, err = v.Load(ctx, ref, "250")
	assert.True(t, errors.Is(err, common.ErrNotFound), "missing variant is never synthesized")
}
