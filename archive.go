package vdir

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

// ArchiveDir is a directory rooted inside a single backing file. Every node
// opened from the same root shares the backing file and its entry list.
type ArchiveDir struct {
	registry *Registry
	driver   Driver
	backing  File
	parent   Directory
	set      *entrySet
	logger   hclog.Logger

	mu          sync.RWMutex
	virtualPath string
	flatten     bool
}

// NewArchiveDir returns the root node of the archive stored in backing.
// reg may be nil, in which case nested archives are not discovered by
// Directories.
func NewArchiveDir(backing File, driver Driver, reg *Registry) *ArchiveDir {
	d := &ArchiveDir{
		registry: reg,
		driver:   driver,
		backing:  backing,
		set:      newEntrySet(),
		logger:   hclog.NewNullLogger(),
		flatten:  true,
	}
	if reg != nil {
		d.flatten = reg.opts.FlattenInitialDirectory
		d.logger = reg.logger
	}
	return d
}

// NewChild returns the node for path inside the archive of parent. It
// shares the parent's entry list and never parses on its own.
func NewChild(parent *ArchiveDir, path string) *ArchiveDir {
	return &ArchiveDir{
		registry:    parent.registry,
		driver:      parent.driver,
		backing:     parent.backing,
		parent:      parent,
		set:         parent.set,
		logger:      parent.logger,
		virtualPath: normalizePath(path),
		flatten:     parent.flatten,
	}
}

// SetFlattenInitialDirectory changes whether this node skips a single
// wrapping folder. It only has an effect before the archive is parsed.
func (d *ArchiveDir) SetFlattenInitialDirectory(flatten bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.flatten = flatten
}

func (d *ArchiveDir) VirtualPath() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.virtualPath
}

func (d *ArchiveDir) Backing() File {
	return d.backing
}

func (d *ArchiveDir) Driver() Driver {
	return d.driver
}

// IsRoot reports whether the node was opened directly from its backing file.
func (d *ArchiveDir) IsRoot() bool {
	return d.parent == nil
}

// SetID identifies the entry list shared by every node opened from the same
// root. Opening the backing file again yields a new ID.
func (d *ArchiveDir) SetID() uuid.UUID {
	return d.set.id
}

// Parsed reports whether the shared entry list has been read.
func (d *ArchiveDir) Parsed() bool {
	return d.set.isParsed()
}

// Entries returns every entry of the archive, at any depth.
func (d *ArchiveDir) Entries() ([]Entry, error) {
	entries, err := d.entries()
	if err != nil {
		return nil, err
	}
	return append([]Entry(nil), entries...), nil
}

func (d *ArchiveDir) entries() ([]Entry, error) {
	entries, err := d.set.load(d.backing, d.driver, func(entries []Entry, sum *parseSummary) {
		d.logger.Debug("parsed archive", "file", d.backing.FullName(), "set", d.set.id, "entries", len(entries))
		d.flattenInitialDirectory(sum)
	})
	if err != nil {
		return nil, &ParseError{File: d.backing.FullName(), Err: err}
	}
	return entries, nil
}

// flattenInitialDirectory moves a root node into the archive's only
// top-level directory when there is nothing else at the top level.
func (d *ArchiveDir) flattenInitialDirectory(sum *parseSummary) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.flatten || d.virtualPath != "" {
		return
	}
	if sum.topFiles != 0 || len(sum.topDirs) != 1 {
		return
	}
	d.virtualPath = sum.topDirs[0].FullPath()
	d.logger.Trace("flattened initial directory", "file", d.backing.FullName(), "path", d.virtualPath)
}

func (d *ArchiveDir) Name() string {
	if vp := d.VirtualPath(); vp != "" {
		return baseName(vp)
	}
	return baseName(d.FullName())
}

func (d *ArchiveDir) FullName() string {
	if vp := d.VirtualPath(); vp != "" {
		return combine(d.backing.FullName(), vp)
	}
	return d.backing.FullName()
}

func (d *ArchiveDir) Parent() Directory {
	if d.parent != nil {
		return d.parent
	}
	if dir := d.backing.Directory(); dir != nil {
		return dir
	}
	return nil
}

func (d *ArchiveDir) String() string {
	return d.FullName()
}

func (d *ArchiveDir) Files(patterns ...string) ([]File, error) {
	re, err := compilePatterns(patterns)
	if err != nil {
		return nil, err
	}
	entries, err := d.entries()
	if err != nil {
		return nil, err
	}

	vp := d.VirtualPath()
	files := []File{}
	for _, e := range entries {
		if e.IsDir || !strings.EqualFold(e.Path, vp) {
			continue
		}
		if re != nil && !re.MatchString(e.Name) {
			continue
		}
		files = append(files, d.createFile(e.FullPath()))
	}
	return files, nil
}

func (d *ArchiveDir) SubDirectory(name string) (Directory, error) {
	entries, err := d.entries()
	if err != nil {
		return nil, err
	}

	name = normalizePath(name)
	if name == "" {
		return nil, nil
	}

	target := combine(d.VirtualPath(), name)
	for _, e := range entries {
		if e.IsDir && strings.EqualFold(e.FullPath(), target) {
			return d.createDirectory(e.FullPath()), nil
		}
	}
	return nil, nil
}

func (d *ArchiveDir) Directories() ([]Directory, error) {
	entries, err := d.entries()
	if err != nil {
		return nil, err
	}

	vp := d.VirtualPath()
	subs := []Directory{}
	for _, e := range entries {
		if e.IsDir && strings.EqualFold(e.Path, vp) {
			subs = append(subs, d.createDirectory(e.FullPath()))
		}
	}
	return collectDirectories(d, subs, d.registry)
}

// OpenRead opens the file name, relative to this node, inside the archive.
func (d *ArchiveDir) OpenRead(name string) (io.ReadCloser, error) {
	entries, err := d.entries()
	if err != nil {
		return nil, err
	}

	target := combine(d.VirtualPath(), normalizePath(name))
	for _, e := range entries {
		if !e.IsDir && strings.EqualFold(e.FullPath(), target) {
			return d.openEntry(e.FullPath())
		}
	}
	return nil, fmt.Errorf("could not open %v in %v: %w", name, d.backing.FullName(), ErrNotFound)
}

func (d *ArchiveDir) openEntry(fullPath string) (io.ReadCloser, error) {
	rc, err := d.driver.OpenEntry(d.backing, fullPath)
	if err != nil {
		return nil, fmt.Errorf("could not open %v in %v: %w", fullPath, d.backing.FullName(), err)
	}
	return rc, nil
}

func (d *ArchiveDir) createDirectory(path string) Directory {
	if c, ok := d.driver.(DirectoryCreator); ok {
		return c.CreateDirectory(d, path)
	}
	return NewChild(d, path)
}

func (d *ArchiveDir) createFile(path string) File {
	if c, ok := d.driver.(FileCreator); ok {
		return c.CreateFile(d, path)
	}
	return NewArchiveFile(d, path)
}

// ArchiveFile is a file stored inside an archive.
type ArchiveFile struct {
	dir  *ArchiveDir
	path string
}

func NewArchiveFile(dir *ArchiveDir, path string) *ArchiveFile {
	return &ArchiveFile{dir: dir, path: normalizePath(path)}
}

func (f *ArchiveFile) Name() string {
	return baseName(f.path)
}

// Path returns the location of the file inside its archive.
func (f *ArchiveFile) Path() string {
	return f.path
}

func (f *ArchiveFile) FullName() string {
	return combine(f.dir.backing.FullName(), f.path)
}

func (f *ArchiveFile) Directory() Directory {
	return f.dir
}

func (f *ArchiveFile) OpenRead() (io.ReadCloser, error) {
	return f.dir.openEntry(f.path)
}

func (f *ArchiveFile) String() string {
	return f.FullName()
}
