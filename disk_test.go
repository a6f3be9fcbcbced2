package vdir

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskDirFiles(t *testing.T) {
	dir := NewDiskDirectory(testFS(t), "testdata", newTestRegistry(t))

	files, err := dir.Files()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"readme.txt", "root.zip", "dirinzip.zip", "にほんご.zip", "bundle.tar.gz", "nested.zip",
	}, names(files))

	files, err = dir.Files("*.ZIP")
	require.NoError(t, err)
	assert.Len(t, files, 4)

	readme, err := dir.Files("readme.txt")
	require.NoError(t, err)
	require.Len(t, readme, 1)
	assert.Equal(t, "testdata/readme.txt", readme[0].FullName())

	rc, err := readme[0].OpenRead()
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "hello", string(data))
}

func TestDiskDirSubDirectory(t *testing.T) {
	dir := NewDiskDirectory(testFS(t), "testdata", nil)

	sub, err := dir.SubDirectory("docs")
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, "Docs", sub.Name())
	assert.Equal(t, "testdata/Docs", sub.FullName())
	assert.True(t, Equal(dir, sub.Parent()))

	deep, err := dir.SubDirectory("cat1/CAT2")
	require.NoError(t, err)
	require.NotNil(t, deep)
	assert.Equal(t, "testdata/cat1/cat2", deep.FullName())

	missing, err := dir.SubDirectory("bat1")
	require.NoError(t, err)
	assert.Nil(t, missing)

	notDir, err := dir.SubDirectory("readme.txt")
	require.NoError(t, err)
	assert.Nil(t, notDir)

	assert.Nil(t, dir.Parent())
}

func TestDiskDirDirectories(t *testing.T) {
	dir := NewDiskDirectory(testFS(t), "testdata", newTestRegistry(t))

	dirs, err := dir.Directories()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"Docs", "cat1", "bundle.tar.gz", "dirinzip.zip", "nested.zip", "root.zip", "にほんご.zip",
	}, names(dirs))

	for _, d := range dirs {
		if a, ok := d.(*ArchiveDir); ok {
			assert.False(t, a.Parsed(), a.FullName())
			assert.True(t, Equal(dir, a.Parent()))
		}
	}
}

func TestDiskDirDirectoriesWithoutRegistry(t *testing.T) {
	dir := NewDiskDirectory(testFS(t), "testdata", nil)

	dirs, err := dir.Directories()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Docs", "cat1"}, names(dirs))
}

func TestNestedArchive(t *testing.T) {
	reg := newTestRegistry(t)
	dir := NewDiskDirectory(testFS(t), "testdata", reg)

	files, err := dir.Files("nested.zip")
	require.NoError(t, err)
	require.Len(t, files, 1)
	outer, err := reg.Open(files[0])
	require.NoError(t, err)
	require.NotNil(t, outer)

	dirs, err := outer.Directories()
	require.NoError(t, err)
	require.Len(t, dirs, 1)
	inner := dirs[0].(*ArchiveDir)
	assert.Equal(t, "testdata/nested.zip/inner.zip", inner.FullName())
	assert.Same(t, outer, inner.Parent())

	deep, err := inner.Files()
	require.NoError(t, err)
	require.Len(t, deep, 1)
	assert.Equal(t, "testdata/nested.zip/inner.zip/deep.txt", deep[0].FullName())

	rc, err := deep[0].OpenRead()
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "deep", string(data))
}

func TestOSDirectory(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Sub", "inner"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "Sub", "a.txt"), []byte("a"), 0o644))

	dir, err := NewOSDirectory(root, nil)
	require.NoError(t, err)

	sub, err := dir.SubDirectory("sub")
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, filepath.ToSlash(filepath.Join(root, "Sub")), sub.FullName())

	files, err := sub.Files("*.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, names(files))

	parent := dir.Parent()
	require.NotNil(t, parent)
	assert.Equal(t, filepath.ToSlash(filepath.Dir(root)), parent.FullName())
}
