package vdir

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"io"
	"strings"
	"sync/atomic"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// archiveFile is a file stored in a test archive. Names ending in "/" are
// directories.
type archiveFile struct {
	Name    string
	Content string
}

func zipBytes(t *testing.T, files ...archiveFile) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, f := range files {
		fw, err := w.Create(f.Name)
		require.NoError(t, err)
		if !strings.HasSuffix(f.Name, "/") {
			_, err = io.WriteString(fw, f.Content)
			require.NoError(t, err)
		}
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func tarBytes(t *testing.T, compress bool, files ...archiveFile) []byte {
	t.Helper()

	var buf bytes.Buffer
	var out io.Writer = &buf
	var zw *gzip.Writer
	if compress {
		zw = gzip.NewWriter(&buf)
		out = zw
	}

	w := tar.NewWriter(out)
	for _, f := range files {
		hdr := &tar.Header{Name: f.Name, Mode: 0o644, Size: int64(len(f.Content)), Typeflag: tar.TypeReg}
		if strings.HasSuffix(f.Name, "/") {
			hdr.Typeflag = tar.TypeDir
			hdr.Mode = 0o755
			hdr.Size = 0
		}
		require.NoError(t, w.WriteHeader(hdr))
		if hdr.Typeflag == tar.TypeReg {
			_, err := io.WriteString(w, f.Content)
			require.NoError(t, err)
		}
	}
	require.NoError(t, w.Close())
	if zw != nil {
		require.NoError(t, zw.Close())
	}
	return buf.Bytes()
}

func newTestRegistry(t *testing.T, opts ...Option) *Registry {
	t.Helper()

	reg, err := NewDefaultRegistry(opts...)
	require.NoError(t, err)
	return reg
}

// testFS returns a MapFS holding a few plain files, folders and archives.
func testFS(t *testing.T) fstest.MapFS {
	t.Helper()

	return fstest.MapFS{
		"readme.txt":      {Data: []byte("hello")},
		"cat1/a.jpg":      {Data: []byte("jpg")},
		"cat1/cat2/b.jpg": {Data: []byte("jpg")},
		"Docs/Notes.TXT":  {Data: []byte("notes")},
		"root.zip":        {Data: zipBytes(t, archiveFile{"cat1744.jpg", "meow"})},
		"dirinzip.zip":    {Data: zipBytes(t, archiveFile{"z/", ""}, archiveFile{"z/cat1744.jpg", "meow"})},
		"にほんご.zip":        {Data: zipBytes(t, archiveFile{"にほんご/", ""}, archiveFile{"にほんご/ふぁいる.txt", "x"})},
		"bundle.tar.gz":   {Data: tarBytes(t, true, archiveFile{"pkg/", ""}, archiveFile{"pkg/main.go", "package main"})},
		"nested.zip":      {Data: zipBytes(t, archiveFile{"inner.zip", string(zipBytes(t, archiveFile{"deep.txt", "deep"}))}, archiveFile{"top.txt", "top"})},
	}
}

// staticDriver yields a fixed entry list regardless of the stream and
// counts how often it is asked to parse.
type staticDriver struct {
	entries []Entry
	err     error
	reads   atomic.Int32
}

func (d *staticDriver) ReadEntries(r io.Reader, fn func(Entry) error) error {
	d.reads.Add(1)
	if _, err := io.Copy(io.Discard, r); err != nil {
		return err
	}
	if d.err != nil {
		return d.err
	}
	for _, e := range d.entries {
		if err := fn(e); err != nil {
			return err
		}
	}
	return nil
}

func (d *staticDriver) OpenEntry(_ File, fullPath string) (io.ReadCloser, error) {
	for _, e := range d.entries {
		if !e.IsDir && strings.EqualFold(e.FullPath(), fullPath) {
			return io.NopCloser(strings.NewReader("content of " + e.FullPath())), nil
		}
	}
	return nil, ErrNotFound
}

// countingFile counts how often its stream is opened.
type countingFile struct {
	name  string
	data  []byte
	opens atomic.Int32
	fail  bool
}

func (f *countingFile) Name() string         { return baseName(f.name) }
func (f *countingFile) FullName() string     { return f.name }
func (f *countingFile) Directory() Directory { return nil }

func (f *countingFile) OpenRead() (io.ReadCloser, error) {
	f.opens.Add(1)
	if f.fail {
		return nil, errors.New("backing file unavailable")
	}
	return io.NopCloser(bytes.NewReader(f.data)), nil
}

func names[T interface{ Name() string }](items []T) []string {
	ret := make([]string, 0, len(items))
	for _, i := range items {
		ret = append(ret, i.Name())
	}
	return ret
}
