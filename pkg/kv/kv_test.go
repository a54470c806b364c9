package kv

import (
	"errors"
	"path/filepath"
	"testing"
)

func testStore(t *testing.T, store Store) {
	t.Helper()

	if _, err := store.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) = %v, want ErrNotFound", err)
	}

	if err := store.Set("repo", []byte("user/repo")); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	got, err := store.Get("repo")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if string(got) != "user/repo" {
		t.Errorf("Get = %q, want user/repo", got)
	}

	if err := store.Set("repo", []byte("other/repo")); err != nil {
		t.Fatalf("Set overwrite error: %v", err)
	}
	if GetString(store, "repo") != "other/repo" {
		t.Errorf("overwrite not visible")
	}

	if err := store.Delete("repo"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := store.Get("repo"); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted key still present")
	}
	if err := store.Delete("repo"); err != nil {
		t.Errorf("Delete of missing key = %v, want nil", err)
	}
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemory())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "form.json")
	testStore(t, NewFile(path))
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "form.json")

	first := NewFile(path)
	if err := first.Set("path", []byte("docs/model.md")); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	second := NewFile(path)
	if GetString(second, "path") != "docs/model.md" {
		t.Errorf("state did not survive a new instance")
	}
}
