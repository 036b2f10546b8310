// Package seen persists the set of job IDs already alerted on. One ID per
// line; once seen, seen forever. Growth is unbounded; `seen merge` and
// `seen stats` cover manual housekeeping.
package seen

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Set is the in-memory seen-ID set for one run.
type Set struct {
	ids map[string]struct{}
}

func NewSet() *Set {
	return &Set{ids: make(map[string]struct{})}
}

func (s *Set) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Mark records id as seen and reports whether it was novel before the call.
func (s *Set) Mark(id string) bool {
	if _, ok := s.ids[id]; ok {
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

func (s *Set) Len() int {
	return len(s.ids)
}

// IDs returns the set sorted, the order the file is written in.
func (s *Set) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Load reads a seen file. A missing file is an empty history, not an error.
func Load(path string) (*Set, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("path is required")
	}

	set := NewSet()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return set, nil
		}
		return nil, err
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		set.ids[line] = struct{}{}
	}
	return set, nil
}

// Save writes the set sorted, one ID per line. Called unconditionally at run
// end so the file always reflects the run, even when nothing was novel.
func Save(path string, set *Set) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("path is required")
	}
	return os.WriteFile(path, []byte(strings.Join(set.IDs(), "\n")+"\n"), 0o644)
}
