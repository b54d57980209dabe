// Package models defines the domain types for Othala.
package models

import (
	"path"
	"strings"
	"time"
)

// File represents any file tracked in the vault index: a Markdown note or an
// attachment (image, PDF, ...). Paths are vault-relative with forward slashes.
type File struct {
	Path      string    `json:"path"`
	Name      string    `json:"name"`
	Ext       string    `json:"ext"` // lowercase, without the dot; "" when none
	IsNote    bool      `json:"is_note"`
	Title     string    `json:"title,omitempty"`
	Checksum  string    `json:"checksum"`
	Tags      []string  `json:"tags,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsMarkdown reports whether the file is a Markdown note by extension.
func (f *File) IsMarkdown() bool {
	return f.Ext == "md"
}

// FileMeta is a lightweight representation returned by list operations.
type FileMeta struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Link represents a directed reference from a note to another vault file or
// to an unresolved target string.
type Link struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// NewFile builds a File from a vault-relative path, deriving Name, Ext, and
// IsNote from the path itself.
func NewFile(p string) File {
	name := path.Base(p)
	ext := strings.TrimPrefix(path.Ext(name), ".")
	ext = strings.ToLower(ext)
	return File{
		Path:   p,
		Name:   name,
		Ext:    ext,
		IsNote: ext == "md",
	}
}

// Base returns the file name without its extension, the string used as a
// note's attachment folder name.
func (f *File) Base() string {
	return strings.TrimSuffix(f.Name, path.Ext(f.Name))
}

// Dir returns the parent folder of the file, "" for the vault root.
func (f *File) Dir() string {
	d := path.Dir(f.Path)
	if d == "." {
		return ""
	}
	return d
}
