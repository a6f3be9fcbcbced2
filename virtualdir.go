package vdir

import "io/fs"

// VirtualDir marks an archive file as a directory in ReadDir results.
type VirtualDir struct {
	fs.DirEntry
}

func (VirtualDir) IsDir() bool {
	return true
}

func (VirtualDir) Type() fs.FileMode {
	return fs.ModeDir
}

func (v VirtualDir) Info() (fs.FileInfo, error) {
	return fileInfo{name: v.Name(), dir: true}, nil
}
