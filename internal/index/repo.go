package index

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/starford/othala/internal/models"
)

// SearchResult represents one search hit.
type SearchResult struct {
	Path    string
	Title   string
	Snippet string
}

// UpsertNote inserts or replaces a parsed note, its FTS entry, and its
// outgoing links within a transaction.
func (db *DB) UpsertNote(f models.File, body string, links []string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	if err := upsertFileRow(tx, f, body); err != nil {
		return err
	}

	// FTS upsert (no-op when the sqlite_fts5 tag is absent).
	if err := ftsUpsert(tx, f.Path, f.Title, body, f.Tags); err != nil {
		return err
	}

	// Replace links: delete old then bulk insert.
	_, _ = tx.Exec(`DELETE FROM links WHERE source = ?`, f.Path)
	if len(links) > 0 {
		stmt, err := tx.Prepare(`INSERT OR IGNORE INTO links (source, target) VALUES (?, ?)`)
		if err != nil {
			return fmt.Errorf("index: prepare link insert: %w", err)
		}
		defer stmt.Close()
		for _, target := range links {
			if _, err := stmt.Exec(f.Path, target); err != nil {
				return fmt.Errorf("index: insert link: %w", err)
			}
		}
	}

	return tx.Commit()
}

// UpsertFile inserts or replaces a non-note file (attachment). Attachments
// carry no body, links, or FTS entry.
func (db *DB) UpsertFile(f models.File) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := upsertFileRow(tx, f, ""); err != nil {
		return err
	}
	return tx.Commit()
}

func upsertFileRow(tx *sql.Tx, f models.File, body string) error {
	tagsJSON, _ := json.Marshal(f.Tags)
	_, err := tx.Exec(`
		INSERT INTO files (path, name, ext, is_note, title, checksum, tags, body, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			name       = excluded.name,
			ext        = excluded.ext,
			is_note    = excluded.is_note,
			title      = excluded.title,
			checksum   = excluded.checksum,
			tags       = excluded.tags,
			body       = excluded.body,
			updated_at = excluded.updated_at
	`, f.Path, f.Name, f.Ext, f.IsNote, f.Title, f.Checksum, string(tagsJSON), body, f.UpdatedAt)
	if err != nil {
		return fmt.Errorf("index: upsert file: %w", err)
	}
	return nil
}

// DeleteFile removes a file, its FTS entry, and its outgoing links.
func (db *DB) DeleteFile(path string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDelete(tx, path)
	_, _ = tx.Exec(`DELETE FROM links WHERE source = ?`, path)
	_, _ = tx.Exec(`DELETE FROM files WHERE path = ?`, path)

	return tx.Commit()
}

// RenameFile re-keys a file row after a storage move. Outgoing links move
// with the source; incoming link rows are refreshed when the referencing
// notes are rewritten and reindexed.
func (db *DB) RenameFile(oldPath, newPath string) error {
	f := models.NewFile(newPath)

	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.Exec(`UPDATE files SET path = ?, name = ?, ext = ?, is_note = ? WHERE path = ?`,
		f.Path, f.Name, f.Ext, f.IsNote, oldPath)
	if err != nil {
		return fmt.Errorf("index: rename file: %w", err)
	}
	_, _ = tx.Exec(`UPDATE links SET source = ? WHERE source = ?`, newPath, oldPath)
	ftsDelete(tx, oldPath)

	return tx.Commit()
}

// GetFile returns the indexed file at path, or nil when not indexed.
func (db *DB) GetFile(path string) (*models.File, error) {
	row := db.conn.QueryRow(`
		SELECT path, name, ext, is_note, title, checksum, tags, updated_at
		FROM files WHERE path = ?`, path)
	f, err := scanFile(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("index: get file: %w", err)
	}
	return f, nil
}

// ListNotes returns paginated notes with an optional tag filter.
// sort is one of "updated_at" (default), "title", "path".
func (db *DB) ListNotes(limit, offset int, tag, sort string) ([]models.File, int, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	where := `is_note = 1`
	args := []any{}
	if tag != "" {
		where += ` AND tags LIKE ?`
		args = append(args, `%"`+tag+`"%`)
	}

	var total int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM files WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("index: count notes: %w", err)
	}

	order := `updated_at DESC`
	switch sort {
	case "title":
		order = `title COLLATE NOCASE ASC`
	case "path":
		order = `path ASC`
	}

	query := `
		SELECT path, name, ext, is_note, title, checksum, tags, updated_at
		FROM files WHERE ` + where + ` ORDER BY ` + order + ` LIMIT ? OFFSET ?`
	rows, err := db.conn.Query(query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("index: list notes: %w", err)
	}
	defer rows.Close()

	var out []models.File
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *f)
	}
	return out, total, rows.Err()
}

// Backlinks returns every note path whose outgoing links include any of the
// given raw targets. Callers pass the target spellings that could refer to
// one file (vault path, path without extension, bare name, ...).
func (db *DB) Backlinks(targets ...string) ([]string, error) {
	if len(targets) == 0 {
		return nil, nil
	}
	query := `SELECT DISTINCT source FROM links WHERE target IN (?` +
		repeatPlaceholder(len(targets)-1) + `) ORDER BY source`
	args := make([]any, len(targets))
	for i, t := range targets {
		args[i] = t
	}
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("index: backlinks: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// AllChecksums returns path → checksum for every indexed file.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT path, checksum FROM files`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var p, cs string
		if err := rows.Scan(&p, &cs); err != nil {
			return nil, err
		}
		out[p] = cs
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFile(r rowScanner) (*models.File, error) {
	var f models.File
	var tagsJSON string
	var updated time.Time
	if err := r.Scan(&f.Path, &f.Name, &f.Ext, &f.IsNote, &f.Title, &f.Checksum, &tagsJSON, &updated); err != nil {
		return nil, err
	}
	_ = json.Unmarshal([]byte(tagsJSON), &f.Tags)
	f.UpdatedAt = updated
	return &f, nil
}

func repeatPlaceholder(n int) string {
	s := ""
	for i := 0; i < n; i++ {
		s += ", ?"
	}
	return s
}
