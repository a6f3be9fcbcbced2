package vdir

import (
	"errors"
	"io"
	"strings"

	"github.com/cavaliergopher/cpio"
)

// CpioDriver browses cpio archives such as initramfs images, gzip
// compressed or not.
type CpioDriver struct{}

func (CpioDriver) ReadEntries(r io.Reader, fn func(Entry) error) error {
	zr, closer, err := gunzip(r)
	if err != nil {
		return err
	}
	defer closer.Close()

	cr := cpio.NewReader(zr)
	dirs := newImplicitDirs()
	for {
		hdr, err := cr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		isDir, ok := cpioEntryKind(hdr)
		if !ok {
			continue
		}
		if err := dirs.emit(hdr.Name, isDir, fn); err != nil {
			return err
		}
	}
}

func (CpioDriver) OpenEntry(backing File, fullPath string) (io.ReadCloser, error) {
	rc, err := backing.OpenRead()
	if err != nil {
		return nil, err
	}

	zr, closer, err := gunzip(rc)
	if err != nil {
		rc.Close()
		return nil, err
	}

	cr := cpio.NewReader(zr)
	for {
		hdr, err := cr.Next()
		if err != nil {
			closer.Close()
			rc.Close()
			if errors.Is(err, io.EOF) {
				return nil, ErrNotFound
			}
			return nil, err
		}

		isDir, ok := cpioEntryKind(hdr)
		if !ok || isDir || !strings.EqualFold(normalizePath(hdr.Name), fullPath) {
			continue
		}
		return readCloser{Reader: cr, closers: []io.Closer{rc, closer}}, nil
	}
}

// cpioEntryKind skips everything but regular files and directories.
func cpioEntryKind(hdr *cpio.Header) (isDir, ok bool) {
	mode := hdr.FileInfo().Mode()
	switch {
	case mode.IsDir():
		return true, true
	case mode.IsRegular():
		return false, true
	}
	return false, false
}
