// Package storage defines the vault file-system abstraction.
package storage

import "github.com/starford/othala/internal/models"

// Provider is the interface for vault file operations. Paths are relative to
// the vault root and use forward slashes.
type Provider interface {
	// List returns metadata for every regular file under dir. Hidden files
	// (dot-prefixed names) are skipped.
	List(dir string) ([]models.FileMeta, error)
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Write atomically writes content to path, creating parent directories.
	Write(path string, content []byte) error
	// Delete removes the file at path.
	Delete(path string) error
	// Move renames oldPath to newPath, creating parent directories.
	Move(oldPath, newPath string) error
	// Exists reports whether a file (not a directory) exists at path.
	Exists(path string) (bool, error)
	// DirExists reports whether a directory exists at path.
	DirExists(path string) (bool, error)
	// MkDir creates the directory at path, including missing parents. It is
	// an error if a regular file already occupies the path.
	MkDir(path string) error
}
