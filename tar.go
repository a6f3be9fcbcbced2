package vdir

import (
	"archive/tar"
	"errors"
	"io"
	"strings"
)

// TarDriver browses tar archives, gzip compressed or not.
type TarDriver struct{}

func (TarDriver) ReadEntries(r io.Reader, fn func(Entry) error) error {
	tr, closer, err := tarNewReader(r)
	if err != nil {
		return err
	}
	defer closer.Close()

	dirs := newImplicitDirs()
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		isDir, ok := tarEntryKind(hdr)
		if !ok {
			continue
		}
		if err := dirs.emit(hdr.Name, isDir, fn); err != nil {
			return err
		}
	}
}

func (TarDriver) OpenEntry(backing File, fullPath string) (io.ReadCloser, error) {
	rc, err := backing.OpenRead()
	if err != nil {
		return nil, err
	}

	tr, closer, err := tarNewReader(rc)
	if err != nil {
		rc.Close()
		return nil, err
	}

	for {
		hdr, err := tr.Next()
		if err != nil {
			closer.Close()
			rc.Close()
			if errors.Is(err, io.EOF) {
				return nil, ErrNotFound
			}
			return nil, err
		}

		isDir, ok := tarEntryKind(hdr)
		if !ok || isDir || !strings.EqualFold(normalizePath(hdr.Name), fullPath) {
			continue
		}
		return readCloser{Reader: tr, closers: []io.Closer{rc, closer}}, nil
	}
}

// tarEntryKind skips everything but regular files and directories.
func tarEntryKind(hdr *tar.Header) (isDir, ok bool) {
	switch hdr.Typeflag {
	case tar.TypeXGlobalHeader, tar.TypeXHeader, tar.TypeGNULongName, tar.TypeGNULongLink:
		return false, false
	}
	mode := hdr.FileInfo().Mode()
	switch {
	case mode.IsDir():
		return true, true
	case mode.IsRegular():
		return false, true
	}
	return false, false
}

// tarNewReader unwraps gzip compression when present.
func tarNewReader(r io.Reader) (*tar.Reader, io.Closer, error) {
	zr, closer, err := gunzip(r)
	if err != nil {
		return nil, nil, err
	}
	return tar.NewReader(zr), closer, nil
}
