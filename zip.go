package vdir

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"strings"
)

// ZipDriver browses zip archives.
type ZipDriver struct{}

func (ZipDriver) ReadEntries(r io.Reader, fn func(Entry) error) error {
	zr, err := zipNewReader(r)
	if err != nil {
		return fmt.Errorf("could not zip as reader: %w", err)
	}

	dirs := newImplicitDirs()
	for _, f := range zr.File {
		isDir := strings.HasSuffix(f.Name, "/") || f.FileInfo().IsDir()
		if err := dirs.emit(f.Name, isDir, fn); err != nil {
			return err
		}
	}
	return nil
}

func (ZipDriver) OpenEntry(backing File, fullPath string) (io.ReadCloser, error) {
	rc, err := backing.OpenRead()
	if err != nil {
		return nil, err
	}

	zr, err := zipNewReader(rc)
	if err != nil {
		rc.Close()
		return nil, fmt.Errorf("could not zip as reader: %w", err)
	}

	for _, f := range zr.File {
		if !strings.EqualFold(normalizePath(f.Name), fullPath) || strings.HasSuffix(f.Name, "/") {
			continue
		}
		fr, err := f.Open()
		if err != nil {
			rc.Close()
			return nil, err
		}
		return readCloser{Reader: fr, closers: []io.Closer{rc, fr}}, nil
	}

	rc.Close()
	return nil, ErrNotFound
}

type sizedReaderAt interface {
	io.ReaderAt
	Size() int64
}

type statReaderAt interface {
	io.ReaderAt
	Stat() (fs.FileInfo, error)
}

// zipNewReader reads r in place when it supports random access and buffers
// it otherwise.
func zipNewReader(r io.Reader) (*zip.Reader, error) {
	switch ra := r.(type) {
	case sizedReaderAt:
		return zip.NewReader(ra, ra.Size())
	case statReaderAt:
		s, err := ra.Stat()
		if err != nil {
			return nil, err
		}
		return zip.NewReader(ra, s.Size())
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return zip.NewReader(bytes.NewReader(data), int64(len(data)))
}
