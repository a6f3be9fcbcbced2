package vdir

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/tidwall/btree"
)

// Registration binds a file extension to the driver that browses it.
type Registration struct {
	Extension string
	Driver    Driver
	FileMask  string
}

// Registry maps file extensions to archive drivers.
type Registry struct {
	opts   *Options
	logger hclog.Logger

	mu    sync.RWMutex
	types btree.Map[string, Registration]
}

func NewRegistry(opts ...Option) (*Registry, error) {
	o := newDefaultOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return &Registry{
		opts:   o,
		logger: o.Logger.Named("vdir"),
	}, nil
}

// NewDefaultRegistry returns a registry that knows zip, tar and cpio
// archives.
func NewDefaultRegistry(opts ...Option) (*Registry, error) {
	r, err := NewRegistry(opts...)
	if err != nil {
		return nil, err
	}

	defaults := []struct {
		ext    string
		driver Driver
	}{
		{".zip", ZipDriver{}},
		{".tar", TarDriver{}},
		{".tar.gz", TarDriver{}},
		{".tgz", TarDriver{}},
		{".cpio", CpioDriver{}},
		{".cpio.gz", CpioDriver{}},
	}
	for _, d := range defaults {
		if err := r.Register(d.ext, d.driver, ""); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) Options() Options {
	return *r.opts
}

// Register binds ext to driver. An empty mask defaults to "*" + ext.
// Registering an extension twice fails with ErrDuplicateExtension.
func (r *Registry) Register(ext string, driver Driver, mask string) error {
	key, err := normalizeExtension(ext)
	if err != nil {
		return err
	}
	if driver == nil {
		return ErrNilDriver
	}
	if mask == "" {
		mask = "*" + key
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.types.Get(key); ok {
		return fmt.Errorf("could not register %v: %w", key, ErrDuplicateExtension)
	}
	r.types.Set(key, Registration{Extension: key, Driver: driver, FileMask: mask})
	r.logger.Debug("registered archive type", "extension", key, "mask", mask)
	return nil
}

// Lookup resolves an extension such as ".zip" or "ZIP".
func (r *Registry) Lookup(ext string) (Registration, bool) {
	key, err := normalizeExtension(ext)
	if err != nil {
		return Registration{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.types.Get(key)
}

// Types returns every registration ordered by extension.
func (r *Registry) Types() []Registration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ret := make([]Registration, 0, r.types.Len())
	r.types.Scan(func(_ string, t Registration) bool {
		ret = append(ret, t)
		return true
	})
	return ret
}

// Match resolves the registration for a file name, preferring the longest
// registered extension ("a.tar.gz" before "a.gz").
func (r *Registry) Match(name string) (Registration, bool) {
	name = baseName(name)
	for i := 1; i < len(name); i++ {
		if name[i] != '.' {
			continue
		}
		if t, ok := r.Lookup(name[i:]); ok {
			return t, true
		}
	}
	return Registration{}, false
}

// Open returns the archive root stored in f, or nil when f is not a
// registered archive.
func (r *Registry) Open(f File) (*ArchiveDir, error) {
	t, ok, err := r.Resolve(f)
	if err != nil || !ok {
		return nil, err
	}
	return r.newRoot(f, t), nil
}

// Resolve finds the registration for f by name, falling back to the file
// header when content detection is enabled.
func (r *Registry) Resolve(f File) (Registration, bool, error) {
	if t, ok := r.Match(f.Name()); ok {
		return t, true, nil
	}
	if !r.opts.ContentDetection {
		return Registration{}, false, nil
	}
	return r.Detect(f)
}

// OpenFile opens the archive at the host path name. It returns nil when the
// extension is not registered.
func (r *Registry) OpenFile(name string) (*ArchiveDir, error) {
	f, err := OSFile(name, r)
	if err != nil {
		return nil, err
	}
	return r.Open(f)
}

// OpenStream opens an archive read from an already open stream. name only
// selects the driver and names the root.
func (r *Registry) OpenStream(name string, rd io.Reader) (*ArchiveDir, error) {
	return r.Open(NewStreamFile(name, rd))
}

func (r *Registry) newRoot(f File, t Registration) *ArchiveDir {
	return NewArchiveDir(f, t.Driver, r)
}

func normalizeExtension(ext string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(ext))
	key = strings.TrimLeft(key, ".")
	if key == "" || strings.ContainsAny(key, `/\*?`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidExtension, ext)
	}
	return "." + key, nil
}
