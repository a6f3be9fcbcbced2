package vdir

import (
	"fmt"
	"regexp"
	"strings"
)

// compilePatterns converts glob patterns into one case-insensitive regular
// expression. "*" matches one or more characters, "?" exactly one.
// It returns nil when no usable pattern is given, which means "match all".
func compilePatterns(patterns []string) (*regexp.Regexp, error) {
	alts := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		q := regexp.QuoteMeta(p)
		q = strings.ReplaceAll(q, `\*`, `.+`)
		q = strings.ReplaceAll(q, `\?`, `.`)
		alts = append(alts, q)
	}
	if len(alts) == 0 {
		return nil, nil
	}

	re, err := regexp.Compile(`(?i)^(?:` + strings.Join(alts, "|") + `)$`)
	if err != nil {
		return nil, fmt.Errorf("could not compile patterns %q: %w", patterns, err)
	}
	return re, nil
}

// MatchPattern reports whether name matches any of the glob patterns.
// An empty pattern set matches everything.
func MatchPattern(name string, patterns ...string) (bool, error) {
	re, err := compilePatterns(patterns)
	if err != nil {
		return false, err
	}
	return re == nil || re.MatchString(name), nil
}
