package vdir

import "io"

// File is a readable leaf. Every archive is backed by a File, so archives
// nested inside archives can be browsed too.
type File interface {
	Name() string
	FullName() string
	// Directory returns the containing directory or nil.
	Directory() Directory
	OpenRead() (io.ReadCloser, error)
}

// Directory is any browsable directory-like node, on disk or inside an
// archive.
type Directory interface {
	Name() string
	FullName() string
	// Parent returns nil for a node without a parent.
	Parent() Directory
	// Files lists the files directly inside the node, filtered by glob
	// patterns. No patterns means all files.
	Files(patterns ...string) ([]File, error)
	// SubDirectory returns nil, nil when there is no such directory.
	SubDirectory(name string) (Directory, error)
	// Directories lists direct subdirectories together with every file
	// that opens as a registered archive.
	Directories() ([]Directory, error)
}

var (
	_ Directory = (*DiskDir)(nil)
	_ Directory = (*ArchiveDir)(nil)
	_ File      = (*DiskFile)(nil)
	_ File      = (*ArchiveFile)(nil)
	_ File      = (*StreamFile)(nil)
)
