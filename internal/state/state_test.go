package state

import (
	"os"
	"path/filepath"
	"testing"
)

func TestComputeHash(t *testing.T) {
	tmpDir := t.TempDir()
	file1 := filepath.Join(tmpDir, "test1.txt")
	file2 := filepath.Join(tmpDir, "test2.txt")
	file3 := filepath.Join(tmpDir, "test1_copy.txt")

	os.WriteFile(file1, []byte("Hello, World!"), 0644)
	os.WriteFile(file2, []byte("Different content"), 0644)
	os.WriteFile(file3, []byte("Hello, World!"), 0644) // Same as file1

	hash1, err := ComputeHash(file1)
	if err != nil {
		t.Fatalf("ComputeHash failed: %v", err)
	}

	hash2, err := ComputeHash(file2)
	if err != nil {
		t.Fatalf("ComputeHash failed: %v", err)
	}

	hash3, err := ComputeHash(file3)
	if err != nil {
		t.Fatalf("ComputeHash failed: %v", err)
	}

	// Same content = same hash
	if hash1 != hash3 {
		t.Errorf("Same content should produce same hash: %s != %s", hash1, hash3)
	}

	// Different content = different hash
	if hash1 == hash2 {
		t.Errorf("Different content should produce different hash")
	}

	// Hash should be 32 hex chars
	if len(hash1) != 32 {
		t.Errorf("Hash should be 32 chars, got %d", len(hash1))
	}
}

func TestComputeHashMissingFile(t *testing.T) {
	if _, err := ComputeHash(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestStore(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	store, err := NewStore()
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	if _, ok := store.Session("nope"); ok {
		t.Error("unknown hash should have no session")
	}

	sess := Session{
		PageFormat: "roman",
		Terms: []SavedTerm{
			{Term: "dragons", Category: "Creatures", Page: 4},
			{Term: "wyverns", Category: "Creatures", Page: 9},
		},
	}
	if err := store.SaveSession("abc123", sess); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}

	got, ok := store.Session("abc123")
	if !ok {
		t.Fatal("saved session not found")
	}
	if got.PageFormat != "roman" {
		t.Errorf("PageFormat = %q, want roman", got.PageFormat)
	}
	if len(got.Terms) != 2 || got.Terms[0].Term != "dragons" {
		t.Errorf("Terms = %+v, want dragons and wyverns", got.Terms)
	}
}

func TestStorePersistsAcrossLoads(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	store, err := NewStore()
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	sess := Session{PageFormat: "alpha", Terms: []SavedTerm{{Term: "magic", Category: "General", Page: 2}}}
	if err := store.SaveSession("deadbeef", sess); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}

	// A fresh store reads the same file.
	reloaded, err := NewStore()
	if err != nil {
		t.Fatalf("NewStore (reload) failed: %v", err)
	}
	got, ok := reloaded.Session("deadbeef")
	if !ok {
		t.Fatal("session lost on reload")
	}
	if got.Terms[0].Term != "magic" {
		t.Errorf("Terms = %+v, want magic", got.Terms)
	}
}

func TestStoreClear(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	store, err := NewStore()
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	store.SaveSession("h1", Session{PageFormat: "arabic"})
	if err := store.Clear("h1"); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, ok := store.Session("h1"); ok {
		t.Error("cleared session still present")
	}
}

func TestStoreCorruptFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)

	stateDir := filepath.Join(dir, "folio")
	os.MkdirAll(stateDir, 0755)
	os.WriteFile(filepath.Join(stateDir, stateFileName), []byte("not json"), 0644)

	// Corrupt state is non-fatal; the store starts empty.
	store, err := NewStore()
	if err != nil {
		t.Fatalf("NewStore failed on corrupt file: %v", err)
	}
	if _, ok := store.Session("anything"); ok {
		t.Error("corrupt store should be empty")
	}
}
