package vdir

import "strings"

// Separator is the canonical separator of every virtual path.
const Separator = "/"

// normalizePath converts backslashes, drops empty and "." segments and trims
// leading/trailing separators. "" is the container root.
func normalizePath(p string) string {
	p = strings.ReplaceAll(p, `\`, Separator)
	if !strings.Contains(p, Separator) && p != "." {
		return p
	}
	return strings.Join(sepPath(p), Separator)
}

// sepPath splits a virtual path into its segments.
func sepPath(p string) []string {
	p = strings.ReplaceAll(p, `\`, Separator)
	ret := []string{}
	for _, seg := range strings.Split(p, Separator) {
		if seg == "" || seg == "." {
			continue
		}
		ret = append(ret, seg)
	}
	return ret
}

// combine joins two virtual paths. Either side may be empty.
func combine(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return strings.TrimRight(a, Separator) + Separator + strings.TrimLeft(b, Separator)
}

// baseName returns the last segment of a path, accepting both separators.
func baseName(p string) string {
	p = strings.TrimRight(strings.ReplaceAll(p, `\`, Separator), Separator)
	if i := strings.LastIndex(p, Separator); i >= 0 {
		return p[i+1:]
	}
	return p
}

// splitPath returns the directory part and the leaf of a normalized path.
func splitPath(p string) (dir, name string) {
	p = normalizePath(p)
	if i := strings.LastIndex(p, Separator); i >= 0 {
		return p[:i], p[i+1:]
	}
	return "", p
}
