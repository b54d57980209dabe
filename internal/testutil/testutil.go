// Package testutil provides shared test helpers for setting up vaults and
// databases.
package testutil

import (
	"os"
	"testing"

	"github.com/starford/othala/internal/index"
	"github.com/starford/othala/internal/storage"
)

// TestDB creates a temporary SQLite database that is automatically cleaned up.
func TestDB(t *testing.T) *index.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "othala-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := index.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestVault creates a temporary vault directory with a storage.Provider.
func TestVault(t *testing.T) (string, storage.Provider) {
	t.Helper()
	vaultDir := t.TempDir()
	store, err := storage.NewFS(vaultDir)
	if err != nil {
		t.Fatal(err)
	}
	return vaultDir, store
}

// SeedFile writes a vault file and indexes it, the way the sync pass would.
func SeedFile(t *testing.T, store storage.Provider, db *index.DB, path string, data []byte) {
	t.Helper()
	if err := store.Write(path, data); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	if err := index.IndexFile(db, path, data); err != nil {
		t.Fatalf("index %s: %v", path, err)
	}
}
