package mcpserver

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/othala/internal/index"
	"github.com/starford/othala/internal/notify"
	"github.com/starford/othala/internal/relocate"
	"github.com/starford/othala/internal/settings"
	"github.com/starford/othala/internal/storage"
	"github.com/starford/othala/internal/testutil"
	"github.com/starford/othala/internal/vault"
)

func testServer(t *testing.T) (*Server, storage.Provider, *index.DB) {
	t.Helper()

	_, store := testutil.TestVault(t)
	db := testutil.TestDB(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	v := vault.New(store, db, logger)
	cfg := settings.NewStore(filepath.Join(t.TempDir(), "settings.json"))
	reloc := relocate.NewService(v, cfg, notify.Discard, logger)

	return New(v, reloc, cfg), store, db
}

func seedFile(t *testing.T, store storage.Provider, db *index.DB, path, content string) {
	t.Helper()
	testutil.SeedFile(t, store, db, path, []byte(content))
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go doesn't expose a direct "call tool" test helper, so we call the
	// handler functions directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "relocate_embeds":
		result, err = srv.relocateEmbeds(ctx, req)
	case "read_note":
		result, err = srv.readNote(ctx, req)
	case "list_notes":
		result, err = srv.listNotes(ctx, req)
	case "search_notes":
		result, err = srv.searchNotes(ctx, req)
	case "get_backlinks":
		result, err = srv.getBacklinks(ctx, req)
	case "get_settings":
		result, err = srv.getSettings(ctx, req)
	case "set_exclude":
		result, err = srv.setExclude(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestRelocateEmbedsTool(t *testing.T) {
	srv, store, db := testServer(t)
	seedFile(t, store, db, "Trip.md", "![[photo.png]]\n")
	seedFile(t, store, db, "photo.png", "\x89PNG")

	r := callTool(t, srv, "relocate_embeds", map[string]interface{}{"path": "Trip.md"})
	if r.IsError {
		t.Fatalf("relocate error: %s", resultText(r))
	}
	if got := resultText(r); got != "moved 1 attachment(s) to Trip" {
		t.Errorf("result = %q", got)
	}
	if ok, _ := store.Exists("Trip/photo.png"); !ok {
		t.Error("attachment not moved")
	}
}

func TestRelocateEmbedsTool_MissingNote(t *testing.T) {
	srv, _, _ := testServer(t)
	r := callTool(t, srv, "relocate_embeds", map[string]interface{}{"path": "nope.md"})
	if !r.IsError {
		t.Error("expected error for missing note")
	}
}

func TestReadNote(t *testing.T) {
	srv, store, db := testServer(t)
	seedFile(t, store, db, "test.md", "# Test\nHello")

	r := callTool(t, srv, "read_note", map[string]interface{}{"path": "test.md"})
	if got := resultText(r); got != "# Test\nHello" {
		t.Errorf("read result = %q", got)
	}
}

func TestReadNoteMissing(t *testing.T) {
	srv, _, _ := testServer(t)
	r := callTool(t, srv, "read_note", map[string]interface{}{"path": "nope.md"})
	if !r.IsError {
		t.Error("expected error for missing note")
	}
}

func TestListNotesTool(t *testing.T) {
	srv, store, db := testServer(t)
	seedFile(t, store, db, "a.md", "# A")
	seedFile(t, store, db, "b.md", "# B")
	seedFile(t, store, db, "photo.png", "x")

	r := callTool(t, srv, "list_notes", map[string]interface{}{})
	text := resultText(r)
	if text != "a.md\nb.md" {
		t.Errorf("list = %q", text)
	}
}

func TestGetBacklinks(t *testing.T) {
	srv, store, db := testServer(t)
	seedFile(t, store, db, "b.md", "# B")
	seedFile(t, store, db, "a.md", "links to [[b]]")

	r := callTool(t, srv, "get_backlinks", map[string]interface{}{"path": "b.md"})
	if got := resultText(r); got != "a.md" {
		t.Errorf("backlinks = %q, want a.md", got)
	}
}

func TestSettingsTools(t *testing.T) {
	srv, _, _ := testServer(t)

	r := callTool(t, srv, "set_exclude", map[string]interface{}{"exclude": "shared"})
	if r.IsError {
		t.Fatalf("set_exclude error: %s", resultText(r))
	}

	r = callTool(t, srv, "get_settings", map[string]interface{}{})
	if got := resultText(r); !strings.Contains(got, `"shared"`) {
		t.Errorf("settings = %q", got)
	}
}
