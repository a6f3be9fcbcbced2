package vdir

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"slices"
	"strings"
	"time"
)

// FS exposes a Directory tree as an fs.FS in which every registered archive
// can be walked into like a directory.
type FS struct {
	root Directory
	reg  *Registry
}

func New(root Directory, reg *Registry) FS {
	return FS{root: root, reg: reg}
}

// Open opens a file or a directory. An archive opens as its root directory.
func (aifs FS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	dir, file, err := aifs.open(aifs.root, sepFilePath(name))
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	if dir != nil {
		return &dirHandle{fsys: aifs, dir: dir, name: path.Base(name)}, nil
	}

	rc, err := file.OpenRead()
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	return &fileHandle{file: file, rc: rc}, nil
}

func (aifs FS) ReadDir(name string) ([]fs.DirEntry, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrInvalid}
	}
	dir, _, err := aifs.open(aifs.root, sepFilePath(name))
	if err == nil && dir == nil {
		err = fmt.Errorf("could not open %v as directory", name)
	}
	if err != nil {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: err}
	}
	return aifs.readDir(dir)
}

// open walks paths below current. Each segment is a subdirectory, an
// archive or, for the last one only, a plain file.
func (aifs FS) open(current Directory, paths []string) (Directory, File, error) {
	if len(paths) == 0 || (len(paths) == 1 && paths[0] == ".") {
		return current, nil, nil
	}

	sub, err := current.SubDirectory(paths[0])
	if err != nil {
		return nil, nil, err
	}
	if sub != nil {
		return aifs.open(sub, paths[1:])
	}

	file, err := findFile(current, paths[0])
	if err != nil {
		return nil, nil, err
	}
	if file == nil {
		return nil, nil, fs.ErrNotExist
	}

	if aifs.reg != nil {
		archive, err := aifs.reg.Open(file)
		if err != nil {
			return nil, nil, err
		}
		if archive != nil {
			// paths address the archive as stored
			archive.SetFlattenInitialDirectory(false)
			return aifs.open(archive, paths[1:])
		}
	}

	if len(paths) == 1 {
		return nil, file, nil
	}
	return nil, nil, fmt.Errorf("could not open %v as directory: %w", paths[0], fs.ErrNotExist)
}

func (aifs FS) readDir(dir Directory) ([]fs.DirEntry, error) {
	dirs, err := dir.Directories()
	if err != nil {
		return nil, err
	}
	files, err := dir.Files()
	if err != nil {
		return nil, err
	}

	entries := make([]fs.DirEntry, 0, len(dirs)+len(files))
	for _, d := range dirs {
		// archive roots show up once, as their file
		if a, ok := d.(*ArchiveDir); ok && a.IsRoot() {
			continue
		}
		entries = append(entries, dirEntry{name: d.Name(), dir: true})
	}
	for _, f := range files {
		var entry fs.DirEntry = dirEntry{name: f.Name()}
		archive, err := aifs.isArchive(f)
		if err != nil {
			return nil, err
		}
		if archive {
			entry = VirtualDir{entry}
		}
		entries = append(entries, entry)
	}

	slices.SortFunc(entries, func(a, b fs.DirEntry) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return entries, nil
}

// isArchive decides the same way open does, so every file listed as a
// directory can be walked into.
func (aifs FS) isArchive(f File) (bool, error) {
	if aifs.reg == nil {
		return false, nil
	}
	_, ok, err := aifs.reg.Resolve(f)
	return ok, err
}

// findFile prefers an exact match over a case-insensitive one.
func findFile(dir Directory, name string) (File, error) {
	files, err := dir.Files()
	if err != nil {
		return nil, err
	}

	var folded File
	for _, f := range files {
		if f.Name() == name {
			return f, nil
		}
		if folded == nil && strings.EqualFold(f.Name(), name) {
			folded = f
		}
	}
	return folded, nil
}

// name must be a valid fs path
func sepFilePath(name string) []string {
	ret := []string{}

	for {
		base := path.Base(name)
		name = path.Dir(name)

		if base == "." {
			break
		}
		ret = append(ret, base)
	}

	if len(ret) == 0 {
		ret = append(ret, ".")
	}

	slices.Reverse(ret)
	return ret
}

type dirEntry struct {
	name string
	dir  bool
}

func (e dirEntry) Name() string { return e.name }
func (e dirEntry) IsDir() bool  { return e.dir }

func (e dirEntry) Type() fs.FileMode {
	if e.dir {
		return fs.ModeDir
	}
	return 0
}

func (e dirEntry) Info() (fs.FileInfo, error) {
	return fileInfo(e), nil
}

type fileInfo struct {
	name string
	dir  bool
}

func (i fileInfo) Name() string       { return i.name }
func (i fileInfo) Size() int64        { return 0 }
func (i fileInfo) ModTime() time.Time { return time.Time{} }
func (i fileInfo) IsDir() bool        { return i.dir }
func (i fileInfo) Sys() any           { return nil }

func (i fileInfo) Mode() fs.FileMode {
	if i.dir {
		return fs.ModeDir | 0o555
	}
	return 0o444
}

type fileHandle struct {
	file File
	rc   io.ReadCloser
}

func (h *fileHandle) Stat() (fs.FileInfo, error) {
	return fileInfo{name: h.file.Name()}, nil
}

func (h *fileHandle) Read(p []byte) (int, error) {
	return h.rc.Read(p)
}

func (h *fileHandle) Close() error {
	return h.rc.Close()
}

type dirHandle struct {
	fsys    FS
	dir     Directory
	name    string
	entries []fs.DirEntry
	read    bool
}

func (h *dirHandle) Stat() (fs.FileInfo, error) {
	return fileInfo{name: h.name, dir: true}, nil
}

func (h *dirHandle) Read([]byte) (int, error) {
	return 0, &fs.PathError{Op: "read", Path: h.name, Err: errors.New("is a directory")}
}

func (h *dirHandle) Close() error {
	return nil
}

func (h *dirHandle) ReadDir(n int) ([]fs.DirEntry, error) {
	if !h.read {
		entries, err := h.fsys.readDir(h.dir)
		if err != nil {
			return nil, err
		}
		h.entries = entries
		h.read = true
	}

	if n <= 0 {
		ret := h.entries
		h.entries = nil
		return ret, nil
	}
	if len(h.entries) == 0 {
		return nil, io.EOF
	}
	n = min(n, len(h.entries))
	ret := h.entries[:n]
	h.entries = h.entries[n:]
	return ret, nil
}
