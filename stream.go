package vdir

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// StreamFile is a File over an already open stream. The stream is drained
// on the first OpenRead and served from memory afterwards.
type StreamFile struct {
	name string

	mu   sync.Mutex
	r    io.Reader
	data []byte
	err  error
}

func NewStreamFile(name string, r io.Reader) *StreamFile {
	return &StreamFile{name: name, r: r}
}

func (f *StreamFile) Name() string {
	return baseName(f.name)
}

func (f *StreamFile) FullName() string {
	return f.name
}

// Directory always returns nil; a stream has no location.
func (f *StreamFile) Directory() Directory {
	return nil
}

func (f *StreamFile) OpenRead() (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.r != nil {
		f.data, f.err = io.ReadAll(f.r)
		if c, ok := f.r.(io.Closer); ok {
			if err := c.Close(); err != nil && f.err == nil {
				f.err = err
			}
		}
		f.r = nil
	}
	if f.err != nil {
		return nil, fmt.Errorf("could not read %v: %w", f.name, f.err)
	}
	return bytesReadCloser{bytes.NewReader(f.data)}, nil
}

// bytesReadCloser keeps ReadAt and Size visible to drivers.
type bytesReadCloser struct {
	*bytes.Reader
}

func (bytesReadCloser) Close() error {
	return nil
}
