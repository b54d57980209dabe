package index

import (
	"database/sql"
	"fmt"
	"path"
	"strings"

	"github.com/starford/othala/internal/models"
)

// ResolveLink maps a raw reference string to a concrete indexed file, using
// the referencing note's path as context. Resolution order mirrors how the
// renderer resolves wikilinks and embeds:
//
//  1. exact vault path (case-insensitive), then with ".md" appended
//  2. path relative to the note's own folder, same two spellings
//  3. bare basename lookup across the vault (only when the raw string has
//     no path separator); the shortest path wins on ambiguity
//
// Alias and heading segments are stripped first. Returns nil when nothing
// matches; an unresolvable reference is not an error.
func (db *DB) ResolveLink(raw, contextPath string) (*models.File, error) {
	target := normalizeTarget(raw)
	if target == "" {
		return nil, nil
	}

	// Vault-absolute path.
	if f, err := db.fileByPath(target); f != nil || err != nil {
		return f, err
	}

	// Relative to the referencing note's folder.
	if dir := path.Dir(contextPath); dir != "." && dir != "" {
		rel := path.Clean(path.Join(dir, target))
		if !strings.HasPrefix(rel, "..") {
			if f, err := db.fileByPath(rel); f != nil || err != nil {
				return f, err
			}
		}
	}

	// Bare basename.
	if !strings.Contains(target, "/") {
		return db.fileByName(target)
	}
	return nil, nil
}

// normalizeTarget strips alias and subpath segments and leading separators
// from a raw link target.
func normalizeTarget(raw string) string {
	target := raw
	if before, _, found := strings.Cut(target, "|"); found {
		target = before
	}
	if before, _, found := strings.Cut(target, "#"); found {
		target = before
	}
	target = strings.TrimSpace(target)
	target = strings.TrimPrefix(target, "/")
	if target == "" {
		return ""
	}
	cleaned := path.Clean(target)
	if cleaned == "." || strings.HasPrefix(cleaned, "..") {
		return ""
	}
	return cleaned
}

// fileByPath returns the file at the given vault path, trying the path as
// written and with ".md" appended (wikilinks omit the extension).
func (db *DB) fileByPath(p string) (*models.File, error) {
	for _, candidate := range []string{p, p + ".md"} {
		row := db.conn.QueryRow(`
			SELECT path, name, ext, is_note, title, checksum, tags, updated_at
			FROM files WHERE path = ? COLLATE NOCASE`, candidate)
		f, err := scanFile(row)
		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("index: resolve by path: %w", err)
		}
		return f, nil
	}
	return nil, nil
}

// fileByName returns the file whose basename matches, preferring the one
// closest to the vault root when several share a name.
func (db *DB) fileByName(name string) (*models.File, error) {
	row := db.conn.QueryRow(`
		SELECT path, name, ext, is_note, title, checksum, tags, updated_at
		FROM files
		WHERE name = ? COLLATE NOCASE OR name = ? COLLATE NOCASE
		ORDER BY length(path) ASC, path ASC
		LIMIT 1`, name, name+".md")
	f, err := scanFile(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("index: resolve by name: %w", err)
	}
	return f, nil
}
