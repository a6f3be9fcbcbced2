package vdir

import (
	"errors"
	"fmt"
	"io"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"
	"github.com/h2non/filetype/types"
)

// headerSize covers the tar magic at offset 257, the deepest one filetype
// checks.
const headerSize = 262

// detectAliases maps detected kinds to the extension registered for them
// when the two differ.
var detectAliases = map[types.Type]string{
	matchers.TypeGz: ".tar.gz",
}

// Detect sniffs the header of f and resolves the registration for the
// detected type.
func (r *Registry) Detect(f File) (Registration, bool, error) {
	kind, err := getKind(f)
	if err != nil {
		return Registration{}, false, err
	}
	if kind == types.Unknown {
		return Registration{}, false, nil
	}

	ext := "." + kind.Extension
	if alias, ok := detectAliases[kind]; ok {
		ext = alias
	}
	t, ok := r.Lookup(ext)
	r.logger.Trace("detected file type", "file", f.FullName(), "kind", kind.Extension, "registered", ok)
	return t, ok, nil
}

func getKind(f File) (types.Type, error) {
	rc, err := f.OpenRead()
	if err != nil {
		return types.Unknown, fmt.Errorf("could not open %v: %w", f.FullName(), err)
	}
	defer rc.Close()

	head := make([]byte, headerSize)
	n, err := io.ReadFull(rc, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return types.Unknown, fmt.Errorf("could not read %v: %w", f.FullName(), err)
	}
	if n == 0 {
		return types.Unknown, nil
	}
	return filetype.Match(head[:n])
}
