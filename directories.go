package vdir

import "fmt"

// collectDirectories appends to subs every file of d that opens as a
// registered archive and drops duplicates.
func collectDirectories(d Directory, subs []Directory, reg *Registry) ([]Directory, error) {
	if reg == nil {
		return dedupe(subs), nil
	}

	for _, t := range reg.Types() {
		files, err := d.Files(t.FileMask)
		if err != nil {
			return nil, fmt.Errorf("could not list %v in %v: %w", t.FileMask, d.FullName(), err)
		}
		for _, f := range files {
			subs = append(subs, reg.newRoot(f, t))
		}
	}
	return dedupe(subs), nil
}
