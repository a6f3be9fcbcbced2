package vdir

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// entrySet is the entry list shared by every node opened from the same
// backing file. It moves from unparsed to parsed once and is read-only
// afterwards.
type entrySet struct {
	id uuid.UUID

	mu      sync.Mutex
	parsed  bool
	entries []Entry
}

// parseSummary describes the top level of a freshly parsed archive.
type parseSummary struct {
	topFiles int
	topDirs  []Entry
}

func newEntrySet() *entrySet {
	return &entrySet{id: uuid.New()}
}

// load returns the entries, parsing backing with driver on first use.
// onParse runs for the call that performed the parse, before any other
// caller can see the parsed set.
func (s *entrySet) load(backing File, driver Driver, onParse func([]Entry, *parseSummary)) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.parsed {
		return s.entries, nil
	}

	entries, sum, err := parseEntries(backing, driver)
	if err != nil {
		return nil, err
	}
	s.entries = entries
	s.parsed = true
	onParse(entries, sum)
	return s.entries, nil
}

func (s *entrySet) isParsed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.parsed
}

func parseEntries(backing File, driver Driver) ([]Entry, *parseSummary, error) {
	r, err := backing.OpenRead()
	if err != nil {
		return nil, nil, fmt.Errorf("could not open %v: %w", backing.FullName(), err)
	}
	defer r.Close()

	entries := []Entry{}
	sum := &parseSummary{}
	seenTop := map[string]struct{}{}
	err = driver.ReadEntries(r, func(e Entry) error {
		entries = append(entries, e)
		if e.Path != "" {
			return nil
		}
		if !e.IsDir {
			sum.topFiles++
			return nil
		}
		key := strings.ToLower(e.Name)
		if _, ok := seenTop[key]; !ok {
			seenTop[key] = struct{}{}
			sum.topDirs = append(sum.topDirs, e)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return entries, sum, nil
}
