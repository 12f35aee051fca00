package storage

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func grayPattern(w, h int, seed byte) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = byte(i)*3 + seed
	}
	return img
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	refs := []*image.Gray{
		grayPattern(16, 12, 1),
		grayPattern(16, 12, 77),
		grayPattern(16, 12, 201),
	}
	require.NoError(t, SaveReferences(dir, refs))

	loaded, err := LoadReferences(dir)
	require.NoError(t, err)
	require.Len(t, loaded, len(refs))
	for i := range refs {
		require.Equal(t, refs[i].Rect, loaded[i].Rect, "bounds of ref %d", i)
		require.Equal(t, refs[i].Pix, loaded[i].Pix, "pixels of ref %d", i)
	}
}

func TestSaveReplacesStaleSet(t *testing.T) {
	dir := t.TempDir()
	long := []*image.Gray{grayPattern(8, 8, 0), grayPattern(8, 8, 1), grayPattern(8, 8, 2)}
	require.NoError(t, SaveReferences(dir, long))

	short := []*image.Gray{grayPattern(8, 8, 9)}
	require.NoError(t, SaveReferences(dir, short))

	loaded, err := LoadReferences(dir)
	require.NoError(t, err)
	require.Len(t, loaded, 1)

	_, err = os.Stat(filepath.Join(dir, "ref_2.png"))
	require.True(t, os.IsNotExist(err), "stale trailing reference should be gone")
}

func TestLoadMissingDirIsEmpty(t *testing.T) {
	loaded, err := LoadReferences(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	require.Empty(t, loaded)
}

func TestSaveRejectsNilReference(t *testing.T) {
	dir := t.TempDir()
	err := SaveReferences(dir, []*image.Gray{nil})
	require.Error(t, err)
}
