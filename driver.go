package vdir

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"errors"
	"io"
	"strings"
)

// Driver parses one archive format.
type Driver interface {
	// ReadEntries reads every entry of the archive in r and passes it to
	// fn in archive order. It is called at most once per backing file.
	ReadEntries(r io.Reader, fn func(Entry) error) error
	// OpenEntry opens the file stored under fullPath inside backing.
	OpenEntry(backing File, fullPath string) (io.ReadCloser, error)
}

// DirectoryCreator is implemented by drivers that build their own child
// directory nodes.
type DirectoryCreator interface {
	CreateDirectory(parent *ArchiveDir, path string) Directory
}

// FileCreator is implemented by drivers that wrap archive files in their
// own File type.
type FileCreator interface {
	CreateFile(parent *ArchiveDir, path string) File
}

// implicitDirs emits the parent directories an archive only records
// implicitly, such as "a/" and "a/b/" for a lone "a/b/c.txt".
type implicitDirs struct {
	seen map[string]struct{}
}

func newImplicitDirs() *implicitDirs {
	return &implicitDirs{seen: make(map[string]struct{})}
}

func (t *implicitDirs) emit(full string, isDir bool, fn func(Entry) error) error {
	segs := sepPath(full)
	if len(segs) == 0 {
		return nil
	}

	for i := 1; i < len(segs); i++ {
		if err := t.dir(strings.Join(segs[:i], Separator), fn); err != nil {
			return err
		}
	}

	full = strings.Join(segs, Separator)
	if isDir {
		return t.dir(full, fn)
	}
	return fn(EntryFromPath(full, false))
}

func (t *implicitDirs) dir(full string, fn func(Entry) error) error {
	key := strings.ToLower(full)
	if _, ok := t.seen[key]; ok {
		return nil
	}
	t.seen[key] = struct{}{}
	return fn(EntryFromPath(full, true))
}

// readCloser closes every closer once the entry stream is closed.
type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (rc readCloser) Close() error {
	var first error
	for i := len(rc.closers) - 1; i >= 0; i-- {
		if err := rc.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

var gzipMagic = []byte{0x1f, 0x8b}

// gunzip decompresses r when it starts with the gzip magic and passes it
// through otherwise.
func gunzip(r io.Reader) (io.Reader, io.Closer, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(gzipMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, nil, err
	}
	if !bytes.Equal(head, gzipMagic) {
		return br, io.NopCloser(br), nil
	}

	zr, err := gzip.NewReader(br)
	if err != nil {
		return nil, nil, err
	}
	return zr, zr, nil
}
