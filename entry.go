package vdir

import "strings"

// Entry describes a single file or directory recorded inside a container.
type Entry struct {
	Path  string // containing directory, "" for the container root
	Name  string
	IsDir bool
}

func NewEntry(path, name string, isDir bool) Entry {
	return Entry{
		Path:  normalizePath(path),
		Name:  normalizePath(name),
		IsDir: isDir,
	}
}

// EntryFromPath splits a full in-archive path such as "a/b/c.txt" or
// `a\b\` into an Entry.
func EntryFromPath(full string, isDir bool) Entry {
	dir, name := splitPath(full)
	return Entry{Path: dir, Name: name, IsDir: isDir}
}

func (e Entry) FullPath() string {
	return combine(e.Path, e.Name)
}

// Equal compares paths and names case-insensitively.
func (e Entry) Equal(o Entry) bool {
	return e.IsDir == o.IsDir &&
		strings.EqualFold(e.Path, o.Path) &&
		strings.EqualFold(e.Name, o.Name)
}

func (e Entry) String() string {
	if e.IsDir {
		return e.FullPath() + Separator
	}
	return e.FullPath()
}
