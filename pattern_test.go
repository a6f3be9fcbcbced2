package vdir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchPattern(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		want     bool
	}{
		{name: "a.txt", patterns: []string{"*.txt"}, want: true},
		{name: "c.TXT", patterns: []string{"*.txt"}, want: true},
		{name: "b.png", patterns: []string{"*.txt"}},
		{name: "atxt", patterns: []string{"*.txt"}},
		{name: ".txt", patterns: []string{"*.txt"}},
		{name: "a.txt.bak", patterns: []string{"*.txt"}},
		{name: "b.png", patterns: []string{"*.txt", "*.png"}, want: true},
		{name: "a1.log", patterns: []string{"a?.log"}, want: true},
		{name: "a12.log", patterns: []string{"a?.log"}},
		{name: "(x)+.zip", patterns: []string{"(x)+.zip"}, want: true},
		{name: "anything", want: true},
		{name: "anything", patterns: []string{"", "  "}, want: true},
	}

	for _, tt := range tests {
		got, err := MatchPattern(tt.name, tt.patterns...)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%v %q", tt.name, tt.patterns)
	}
}

func TestCompilePatternsEmpty(t *testing.T) {
	re, err := compilePatterns(nil)
	require.NoError(t, err)
	assert.Nil(t, re)
}
