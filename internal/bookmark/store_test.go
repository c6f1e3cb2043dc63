package bookmark

import (
	"os"
	"path/filepath"
	"testing"
)

func TestToggleAddsAndRemoves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.json")
	s := Open(path)

	added, err := s.Toggle("id1")
	if err != nil || !added {
		t.Fatalf("Toggle add: added=%v err=%v", added, err)
	}
	if !s.Has("id1") {
		t.Errorf("id1 should be bookmarked")
	}
	added, err = s.Toggle("id1")
	if err != nil || added {
		t.Fatalf("Toggle remove: added=%v err=%v", added, err)
	}
	if s.Has("id1") {
		t.Errorf("id1 should be removed")
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.json")
	s := Open(path)
	if _, err := s.Toggle("a_2025-03-01"); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if _, err := s.Toggle("b_2025-03-02"); err != nil {
		t.Fatalf("Toggle: %v", err)
	}

	s2 := Open(path)
	ids := s2.IDs()
	if len(ids) != 2 || ids[0] != "a_2025-03-01" || ids[1] != "b_2025-03-02" {
		t.Errorf("reopened set wrong: %v", ids)
	}
}

func TestCorruptFileDegradesToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s := Open(path)
	if got := len(s.IDs()); got != 0 {
		t.Errorf("corrupt file should read as empty set, got %d ids", got)
	}
	// And the set remains usable.
	if _, err := s.Toggle("id1"); err != nil {
		t.Errorf("Toggle after corrupt load: %v", err)
	}
}

func TestMissingFileIsEmpty(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "nope.json"))
	if len(s.IDs()) != 0 {
		t.Errorf("missing file should read as empty set")
	}
}
