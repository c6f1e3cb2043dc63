package bookmark

import (
	"encoding/json"
	"log/slog"
	"os"
	"sort"
	"sync"
)

// Store holds the user's bookmarked item identifiers, persisted as a JSON
// array in a local file. Mutation is toggle-only. The set survives
// restarts but is owned exclusively by the local session; it is never
// synced anywhere.
type Store struct {
	path string

	mu  sync.Mutex
	ids map[string]struct{}
}

// Open loads the bookmark set from path. A missing or corrupt file
// degrades to an empty set without an error; that is expected on first
// run.
func Open(path string) *Store {
	s := &Store{path: path, ids: map[string]struct{}{}}
	b, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	var ids []string
	if err := json.Unmarshal(b, &ids); err != nil {
		slog.Warn("bookmark: ignoring corrupt bookmark file", "path", path, "err", err)
		return s
	}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// Toggle adds the id if absent, removes it if present, and rewrites the
// file. The in-memory state is kept even when the write fails.
func (s *Store) Toggle(id string) (added bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
	} else {
		s.ids[id] = struct{}{}
		added = true
	}
	return added, s.persist()
}

// Has reports membership.
func (s *Store) Has(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[id]
	return ok
}

// IDs returns the bookmarked identifiers, sorted.
func (s *Store) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (s *Store) persist() error {
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	b, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o644)
}
