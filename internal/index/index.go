package index

import "github.com/starford/othala/internal/models"

// FileIndex defines the interface for vault index operations. Consumers
// should depend on this interface rather than the concrete *DB type to
// facilitate testing with mocks.
type FileIndex interface {
	UpsertNote(f models.File, body string, links []string) error
	UpsertFile(f models.File) error
	DeleteFile(path string) error
	RenameFile(oldPath, newPath string) error
	GetFile(path string) (*models.File, error)
	ResolveLink(raw, contextPath string) (*models.File, error)
	ListNotes(limit, offset int, tag, sort string) ([]models.File, int, error)
	Search(query string, limit int) ([]SearchResult, error)
	Backlinks(targets ...string) ([]string, error)
	AllChecksums() (map[string]string, error)
	Close() error
}

// Verify *DB satisfies FileIndex at compile time.
var _ FileIndex = (*DB)(nil)
