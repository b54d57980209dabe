package vault

import (
	"fmt"
	"strings"

	"github.com/starford/othala/internal/apperr"
	"github.com/starford/othala/internal/index"
	"github.com/starford/othala/internal/models"
)

// CreateNote writes a new Markdown note and indexes it. The path must end in
// ".md" and must not already exist.
func (v *Vault) CreateNote(path string, content []byte) (*models.File, error) {
	if !strings.HasSuffix(strings.ToLower(path), ".md") {
		return nil, fmt.Errorf("vault: create note %q: not a markdown path", path)
	}
	if exists, err := v.store.Exists(path); err != nil {
		return nil, fmt.Errorf("vault: create note: %w", err)
	} else if exists {
		return nil, fmt.Errorf("vault: create note %q: %w", path, apperr.ErrAlreadyExists)
	}
	if err := v.store.Write(path, content); err != nil {
		return nil, fmt.Errorf("vault: create note: %w", err)
	}
	if err := index.IndexFile(v.db, path, content); err != nil {
		return nil, err
	}
	return v.db.GetFile(path)
}

// UpdateNote replaces a note's content. When ifMatch is non-empty it must
// equal the indexed checksum; a mismatch means someone else wrote first and
// returns apperr.ErrConflict.
func (v *Vault) UpdateNote(path string, content []byte, ifMatch string) (*models.File, error) {
	f, err := v.db.GetFile(path)
	if err != nil {
		return nil, err
	}
	if f == nil || !f.IsNote {
		return nil, fmt.Errorf("vault: update note %q: %w", path, apperr.ErrNotFound)
	}
	if ifMatch != "" && ifMatch != f.Checksum {
		return nil, fmt.Errorf("vault: update note %q: %w", path, apperr.ErrConflict)
	}
	if err := v.store.Write(path, content); err != nil {
		return nil, fmt.Errorf("vault: update note: %w", err)
	}
	if err := index.IndexFile(v.db, path, content); err != nil {
		return nil, err
	}
	return v.db.GetFile(path)
}

// DeleteNote removes a note from storage and from the index.
func (v *Vault) DeleteNote(path string) error {
	f, err := v.db.GetFile(path)
	if err != nil {
		return err
	}
	if f == nil || !f.IsNote {
		return fmt.Errorf("vault: delete note %q: %w", path, apperr.ErrNotFound)
	}
	if err := v.store.Delete(path); err != nil {
		return fmt.Errorf("vault: delete note: %w", err)
	}
	return v.db.DeleteFile(path)
}
