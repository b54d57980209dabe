package index

import (
	"os"
	"testing"
	"time"

	"github.com/starford/othala/internal/models"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	f, err := os.CreateTemp("", "othala-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	db, err := Open(f.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func note(path, title, cs string) models.File {
	f := models.NewFile(path)
	f.Title = title
	f.Checksum = cs
	f.UpdatedAt = time.Now()
	return f
}

func attachment(path, cs string) models.File {
	f := models.NewFile(path)
	f.Checksum = cs
	f.UpdatedAt = time.Now()
	return f
}

func TestSchemaCreation(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM files`).Scan(&count); err != nil {
		t.Fatalf("files table missing: %v", err)
	}
	if err := db.conn.QueryRow(`SELECT count(*) FROM links`).Scan(&count); err != nil {
		t.Fatalf("links table missing: %v", err)
	}
}

func TestUpsertAndGetFile(t *testing.T) {
	db := testDB(t)
	if err := db.UpsertNote(note("hello.md", "Hello World", "abc123"), "body", []string{"other"}); err != nil {
		t.Fatalf("UpsertNote: %v", err)
	}
	f, err := db.GetFile("hello.md")
	if err != nil {
		t.Fatalf("GetFile: %v", err)
	}
	if f == nil {
		t.Fatal("GetFile returned nil for indexed note")
	}
	if f.Checksum != "abc123" || f.Title != "Hello World" || !f.IsNote || f.Ext != "md" {
		t.Errorf("file = %+v", f)
	}
}

func TestUpsertAttachment(t *testing.T) {
	db := testDB(t)
	if err := db.UpsertFile(attachment("assets/logo.png", "cs1")); err != nil {
		t.Fatalf("UpsertFile: %v", err)
	}
	f, _ := db.GetFile("assets/logo.png")
	if f == nil {
		t.Fatal("attachment not indexed")
	}
	if f.IsNote || f.Ext != "png" || f.Name != "logo.png" {
		t.Errorf("file = %+v", f)
	}
}

func TestGetFile_NotFound(t *testing.T) {
	db := testDB(t)
	f, err := db.GetFile("nonexistent.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f != nil {
		t.Errorf("expected nil, got %+v", f)
	}
}

func TestBacklinks_MultipleVariants(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertNote(note("a.md", "", "1"), "body", []string{"photo.png"})
	_ = db.UpsertNote(note("c.md", "", "2"), "body", []string{"assets/photo.png"})
	_ = db.UpsertNote(note("d.md", "", "3"), "body", []string{"unrelated"})

	bl, err := db.Backlinks("photo.png", "assets/photo.png")
	if err != nil {
		t.Fatalf("Backlinks: %v", err)
	}
	if len(bl) != 2 {
		t.Fatalf("expected 2 backlinks, got %v", bl)
	}
}

func TestDeleteFile(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertNote(note("del.md", "", "x"), "body", []string{"target"})

	if err := db.DeleteFile("del.md"); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	f, _ := db.GetFile("del.md")
	if f != nil {
		t.Error("deleted file still indexed")
	}
	bl, _ := db.Backlinks("target")
	if len(bl) != 0 {
		t.Errorf("expected 0 backlinks after delete, got %d", len(bl))
	}
}

func TestUpsertReplacesLinks(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertNote(note("up.md", "Old", "1"), "old body", []string{"x"})
	_ = db.UpsertNote(note("up.md", "New", "2"), "new body", []string{"y"})

	f, _ := db.GetFile("up.md")
	if f.Checksum != "2" || f.Title != "New" {
		t.Errorf("file = %+v", f)
	}
	if bl, _ := db.Backlinks("x"); len(bl) != 0 {
		t.Error("old link should be removed on upsert")
	}
	if bl, _ := db.Backlinks("y"); len(bl) != 1 {
		t.Error("new link should exist")
	}
}

func TestRenameFile(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertFile(attachment("pic.png", "cs"))
	_ = db.UpsertNote(note("src.md", "", "1"), "body", []string{"pic.png"})

	if err := db.RenameFile("pic.png", "trip/pic.png"); err != nil {
		t.Fatalf("RenameFile: %v", err)
	}
	if f, _ := db.GetFile("pic.png"); f != nil {
		t.Error("old path still indexed")
	}
	f, _ := db.GetFile("trip/pic.png")
	if f == nil {
		t.Fatal("new path not indexed")
	}
	if f.Name != "pic.png" || f.Ext != "png" {
		t.Errorf("metadata not recomputed: %+v", f)
	}
}

func TestRenameFile_MovesLinkSources(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertNote(note("src.md", "", "1"), "body", []string{"dest"})

	if err := db.RenameFile("src.md", "sub/src.md"); err != nil {
		t.Fatalf("RenameFile: %v", err)
	}
	bl, _ := db.Backlinks("dest")
	if len(bl) != 1 || bl[0] != "sub/src.md" {
		t.Errorf("backlinks = %v, want [sub/src.md]", bl)
	}
}

func TestListNotes_ExcludesAttachments(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertNote(note("a.md", "A", "1"), "", nil)
	_ = db.UpsertNote(note("b.md", "B", "2"), "", nil)
	_ = db.UpsertFile(attachment("logo.png", "3"))

	items, total, err := db.ListNotes(10, 0, "", "path")
	if err != nil {
		t.Fatalf("ListNotes: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("total = %d, len = %d, want 2", total, len(items))
	}
	if items[0].Path != "a.md" || items[1].Path != "b.md" {
		t.Errorf("items = %+v", items)
	}
}

func TestListNotes_TagFilter(t *testing.T) {
	db := testDB(t)
	tagged := note("t.md", "T", "1")
	tagged.Tags = []string{"travel"}
	_ = db.UpsertNote(tagged, "", nil)
	_ = db.UpsertNote(note("u.md", "U", "2"), "", nil)

	items, total, err := db.ListNotes(10, 0, "travel", "")
	if err != nil {
		t.Fatalf("ListNotes: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].Path != "t.md" {
		t.Errorf("items = %+v, total = %d", items, total)
	}
}

func TestSearch_Basic(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertNote(note("s.md", "Search Me", "1"), "uniqueword appears here", nil)

	results, err := db.Search("uniqueword", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Path != "s.md" {
		t.Errorf("search results = %+v, want 1 hit for s.md", results)
	}
}
