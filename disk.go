package vdir

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// DiskDir is an ordinary directory of an fs.FS.
type DiskDir struct {
	registry *Registry
	fsys     fs.FS
	root     string // name of the fsys root, prefixed to every full name
	path     string // "." for the fsys root
	osRoot   bool   // fsys is os.DirFS(root)
}

// NewDiskDirectory returns the root directory of fsys. root is only used to
// build full names.
func NewDiskDirectory(fsys fs.FS, root string, reg *Registry) *DiskDir {
	return &DiskDir{registry: reg, fsys: fsys, root: root, path: "."}
}

// NewOSDirectory returns the host directory name.
func NewOSDirectory(name string, reg *Registry) (*DiskDir, error) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return nil, err
	}
	return &DiskDir{
		registry: reg,
		fsys:     os.DirFS(abs),
		root:     filepath.ToSlash(abs),
		path:     ".",
		osRoot:   true,
	}, nil
}

// OSFile returns the host file name.
func OSFile(name string, reg *Registry) (*DiskFile, error) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return nil, err
	}
	dir, err := NewOSDirectory(filepath.Dir(abs), reg)
	if err != nil {
		return nil, err
	}
	return &DiskFile{dir: dir, path: filepath.Base(abs)}, nil
}

func (d *DiskDir) Name() string {
	return baseName(d.FullName())
}

func (d *DiskDir) FullName() string {
	if d.path == "." {
		return d.root
	}
	return combine(d.root, d.path)
}

func (d *DiskDir) Parent() Directory {
	if d.path != "." {
		return d.child(path.Dir(d.path))
	}
	if !d.osRoot {
		return nil
	}

	parent := path.Dir(d.root)
	if parent == d.root || parent == "." {
		return nil
	}
	p, err := NewOSDirectory(filepath.FromSlash(parent), d.registry)
	if err != nil {
		return nil
	}
	return p
}

func (d *DiskDir) String() string {
	return d.FullName()
}

func (d *DiskDir) child(p string) *DiskDir {
	return &DiskDir{registry: d.registry, fsys: d.fsys, root: d.root, path: p, osRoot: d.osRoot}
}

func (d *DiskDir) join(name string) string {
	if d.path == "." {
		return name
	}
	return d.path + "/" + name
}

func (d *DiskDir) Files(patterns ...string) ([]File, error) {
	re, err := compilePatterns(patterns)
	if err != nil {
		return nil, err
	}
	entries, err := fs.ReadDir(d.fsys, d.path)
	if err != nil {
		return nil, err
	}

	files := []File{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if re != nil && !re.MatchString(entry.Name()) {
			continue
		}
		files = append(files, &DiskFile{dir: d, path: d.join(entry.Name())})
	}
	return files, nil
}

// SubDirectory resolves name segment by segment, ignoring case when there
// is no exact match.
func (d *DiskDir) SubDirectory(name string) (Directory, error) {
	segs := sepPath(name)
	if len(segs) == 0 {
		return nil, nil
	}

	cur := d
	for _, seg := range segs {
		next, err := cur.lookupDir(seg)
		if err != nil || next == nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

func (d *DiskDir) lookupDir(name string) (*DiskDir, error) {
	entries, err := fs.ReadDir(d.fsys, d.path)
	if err != nil {
		return nil, err
	}

	var folded *DiskDir
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if entry.Name() == name {
			return d.child(d.join(entry.Name())), nil
		}
		if folded == nil && strings.EqualFold(entry.Name(), name) {
			folded = d.child(d.join(entry.Name()))
		}
	}
	return folded, nil
}

func (d *DiskDir) Directories() ([]Directory, error) {
	entries, err := fs.ReadDir(d.fsys, d.path)
	if err != nil {
		return nil, err
	}

	subs := []Directory{}
	for _, entry := range entries {
		if entry.IsDir() {
			subs = append(subs, d.child(d.join(entry.Name())))
		}
	}
	return collectDirectories(d, subs, d.registry)
}

// DiskFile is a file of an fs.FS.
type DiskFile struct {
	dir  *DiskDir
	path string
}

func (f *DiskFile) Name() string {
	return path.Base(f.path)
}

func (f *DiskFile) FullName() string {
	return combine(f.dir.root, f.path)
}

func (f *DiskFile) Directory() Directory {
	return f.dir.child(path.Dir(f.path))
}

func (f *DiskFile) OpenRead() (io.ReadCloser, error) {
	r, err := f.dir.fsys.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("could not open %v: %w", f.FullName(), err)
	}
	return r, nil
}

func (f *DiskFile) String() string {
	return f.FullName()
}
