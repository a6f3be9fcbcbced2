package vdir

import (
	"slices"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Equal reports whether two directories share the same full name, ignoring
// case.
func Equal(a, b Directory) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return HashKey(a) == HashKey(b)
}

// HashKey returns the case-folded full name of d.
func HashKey(d Directory) string {
	return cases.Fold().String(d.FullName())
}

// Compare orders directories by full name using the collation rules of tag.
// Unlike Equal it is case sensitive, so Equal(a, b) does not imply
// Compare(a, b) == 0.
func Compare(tag language.Tag, a, b Directory) int {
	return collate.New(tag).CompareString(a.FullName(), b.FullName())
}

// Sort orders dirs in place with Compare.
func Sort(tag language.Tag, dirs []Directory) {
	c := collate.New(tag)
	slices.SortStableFunc(dirs, func(a, b Directory) int {
		return c.CompareString(a.FullName(), b.FullName())
	})
}

// dedupe keeps the first of every group of Equal directories.
func dedupe(dirs []Directory) []Directory {
	seen := make(map[string]struct{}, len(dirs))
	ret := dirs[:0]
	for _, d := range dirs {
		k := HashKey(d)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		ret = append(ret, d)
	}
	return ret
}

// Compare orders directories with the registry's collation.
func (r *Registry) Compare(a, b Directory) int {
	return Compare(r.opts.Collation, a, b)
}

// Sort orders dirs with the registry's collation.
func (r *Registry) Sort(dirs []Directory) {
	Sort(r.opts.Collation, dirs)
}
