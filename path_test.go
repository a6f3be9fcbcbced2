package vdir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: ".", want: ""},
		{in: "a", want: "a"},
		{in: "a/b/", want: "a/b"},
		{in: `a\b\c`, want: "a/b/c"},
		{in: "/a//b/./c/", want: "a/b/c"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizePath(tt.in), tt.in)
	}
}

func TestCombine(t *testing.T) {
	assert.Equal(t, "b", combine("", "b"))
	assert.Equal(t, "a", combine("a", ""))
	assert.Equal(t, "a/b", combine("a", "b"))
	assert.Equal(t, "a/b", combine("a/", "/b"))
	assert.Equal(t, "/b", combine("/", "b"))
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "c.txt", baseName("a/b/c.txt"))
	assert.Equal(t, "c", baseName(`C:\b\c\`))
	assert.Equal(t, "x", baseName("x"))
}

func TestSplitPath(t *testing.T) {
	dir, name := splitPath("a/b/c.txt")
	assert.Equal(t, "a/b", dir)
	assert.Equal(t, "c.txt", name)

	dir, name = splitPath("top/")
	assert.Equal(t, "", dir)
	assert.Equal(t, "top", name)
}
