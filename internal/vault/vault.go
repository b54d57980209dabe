// Package vault ties the storage provider and the file index together into
// the operations the rest of the application works with: reading notes,
// resolving link targets, folder management, and renames that keep the
// referencing notes consistent.
package vault

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/starford/othala/internal/apperr"
	"github.com/starford/othala/internal/index"
	"github.com/starford/othala/internal/models"
	"github.com/starford/othala/internal/storage"
)

// Vault exposes note and attachment operations over a storage provider and
// its file index. All paths are vault-relative with forward slashes.
type Vault struct {
	store  storage.Provider
	db     *index.DB
	logger *slog.Logger
}

// New creates a Vault over the given storage provider and index.
func New(store storage.Provider, db *index.DB, logger *slog.Logger) *Vault {
	return &Vault{store: store, db: db, logger: logger}
}

// GetNote returns the indexed note at path together with its raw Markdown
// content. Returns apperr.ErrNotFound when the path is not an indexed note.
func (v *Vault) GetNote(path string) (*models.File, string, error) {
	f, err := v.db.GetFile(path)
	if err != nil {
		return nil, "", err
	}
	if f == nil || !f.IsNote {
		return nil, "", fmt.Errorf("vault: note %q: %w", path, apperr.ErrNotFound)
	}
	data, err := v.store.Read(path)
	if err != nil {
		return nil, "", fmt.Errorf("vault: read note: %w", err)
	}
	return f, string(data), nil
}

// ResolveLink maps a raw wikilink or embed target to an indexed file, using
// the referencing note's path as context. Returns nil when nothing matches.
func (v *Vault) ResolveLink(raw, contextPath string) (*models.File, error) {
	return v.db.ResolveLink(raw, contextPath)
}

// ListNotes returns paginated notes with an optional tag filter.
func (v *Vault) ListNotes(limit, offset int, tag, sort string) ([]models.File, int, error) {
	return v.db.ListNotes(limit, offset, tag, sort)
}

// Search runs a full-text query over note bodies and titles.
func (v *Vault) Search(query string, limit int) ([]index.SearchResult, error) {
	return v.db.Search(query, limit)
}

// Backlinks returns the notes that reference f under any spelling.
func (v *Vault) Backlinks(f *models.File) ([]string, error) {
	return v.referencingNotes(f)
}

// FolderExists reports whether a directory exists at path.
func (v *Vault) FolderExists(path string) (bool, error) {
	return v.store.DirExists(path)
}

// CreateFolder creates the directory at path, including missing parents.
func (v *Vault) CreateFolder(path string) error {
	return v.store.MkDir(path)
}

// Rename moves a vault file to newPath, re-keys its index row, and repairs
// path-form wikilinks and embeds in every note that referenced it. Bare
// basename references are left alone: they keep resolving through the index
// after the move. Repair failures are logged and do not fail the rename.
func (v *Vault) Rename(f *models.File, newPath string) error {
	if f.Path == newPath {
		return nil
	}
	if occupied, err := v.store.Exists(newPath); err != nil {
		return fmt.Errorf("vault: rename: %w", err)
	} else if occupied {
		return fmt.Errorf("vault: rename to %q: %w", newPath, apperr.ErrAlreadyExists)
	}

	// Collect referencing notes before the index row is re-keyed.
	refs, err := v.referencingNotes(f)
	if err != nil {
		return err
	}

	if err := v.store.Move(f.Path, newPath); err != nil {
		return fmt.Errorf("vault: move %q: %w", f.Path, err)
	}
	if err := v.db.RenameFile(f.Path, newPath); err != nil {
		return err
	}

	for _, ref := range refs {
		if err := v.repairNote(ref, f.Path, newPath); err != nil {
			v.logger.Warn("link repair failed", "note", ref, "error", err)
		}
	}
	return nil
}

// referencingNotes returns the notes whose outgoing links use any spelling
// of the file: full path, path without extension, or bare name.
func (v *Vault) referencingNotes(f *models.File) ([]string, error) {
	spellings := []string{f.Path, f.Name}
	if f.IsMarkdown() {
		spellings = append(spellings,
			strings.TrimSuffix(f.Path, ".md"),
			f.Base(),
		)
	}
	return v.db.Backlinks(spellings...)
}

// repairNote rewrites links in a single referencing note and reindexes it
// when anything changed.
func (v *Vault) repairNote(notePath, oldPath, newPath string) error {
	data, err := v.store.Read(notePath)
	if err != nil {
		return err
	}
	body, changed := rewriteLinks(string(data), oldPath, newPath)
	if !changed {
		return nil
	}
	if err := v.store.Write(notePath, []byte(body)); err != nil {
		return err
	}
	return index.IndexFile(v.db, notePath, []byte(body))
}
