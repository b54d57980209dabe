package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "settings.json"))
}

func TestLoad_NoPriorState(t *testing.T) {
	s := testStore(t)
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.ExcludeString != "" {
		t.Errorf("ExcludeString = %q, want empty default", got.ExcludeString)
	}
}

func TestSaveThenLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	s := NewStore(path)
	if err := s.Save(Settings{ExcludeString: "foo"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// A fresh store reads the value back from disk.
	fresh := NewStore(path)
	got, err := fresh.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.ExcludeString != "foo" {
		t.Errorf("ExcludeString = %q, want %q", got.ExcludeString, "foo")
	}
}

func TestLoad_ShallowMergeOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	// A persisted object without the known key falls back to the default.
	if err := os.WriteFile(path, []byte(`{"someFutureKey": 7}`), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := NewStore(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.ExcludeString != "" {
		t.Errorf("ExcludeString = %q, want default", got.ExcludeString)
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewStore(path).Load(); err == nil {
		t.Error("expected error for corrupt settings file")
	}
}

func TestSave_EmptyStringIsValid(t *testing.T) {
	s := testStore(t)
	if err := s.Save(Settings{ExcludeString: "shared"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(Settings{ExcludeString: ""}); err != nil {
		t.Fatalf("Save empty: %v", err)
	}
	got, _ := s.Current()
	if got.ExcludeString != "" {
		t.Errorf("ExcludeString = %q, want empty", got.ExcludeString)
	}
}

func TestCurrent_CachesAfterLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	s := NewStore(path)
	if err := s.Save(Settings{ExcludeString: "a"}); err != nil {
		t.Fatal(err)
	}
	// Mutating the file behind the store's back is not observed: the cached
	// value is authoritative for the process lifetime.
	if err := os.WriteFile(path, []byte(`{"excludeString":"b"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := s.Current()
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if got.ExcludeString != "a" {
		t.Errorf("ExcludeString = %q, want cached %q", got.ExcludeString, "a")
	}
}
