// Package relocate moves the attachments a note embeds into a folder named
// after the note, next to it.
package relocate

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/starford/othala/internal/apperr"
	"github.com/starford/othala/internal/models"
	"github.com/starford/othala/internal/notify"
	"github.com/starford/othala/internal/scanner"
	"github.com/starford/othala/internal/settings"
)

// Host is the vault surface the relocator needs: note access, link
// resolution, folder management, and a move primitive that repairs links
// in referencing notes.
type Host interface {
	GetNote(path string) (*models.File, string, error)
	ResolveLink(raw, contextPath string) (*models.File, error)
	FolderExists(path string) (bool, error)
	CreateFolder(path string) error
	Rename(f *models.File, newPath string) error
}

// Result summarizes one relocation run.
type Result struct {
	Moved  int    `json:"moved"`
	Folder string `json:"folder"`
}

// Service orchestrates attachment relocation for a note.
type Service struct {
	host     Host
	settings *settings.Store
	notifier notify.Notifier
	logger   *slog.Logger
}

// NewService creates a relocation service.
func NewService(host Host, store *settings.Store, notifier notify.Notifier, logger *slog.Logger) *Service {
	return &Service{host: host, settings: store, notifier: notifier, logger: logger}
}

// Relocate scans the note at notePath for embeds and moves every eligible
// embedded attachment into a sibling folder named after the note. References
// that do not resolve to a movable attachment are skipped silently; a failed
// move is reported and never aborts the rest of the batch. Invoking it again
// on the same note is a no-op.
func (s *Service) Relocate(ctx context.Context, notePath string) (*Result, error) {
	note, content, err := s.note(notePath)
	if err != nil {
		return nil, err
	}

	embeds := scanner.Scan(content)
	if len(embeds) == 0 {
		s.notifier.Notify("No embedded attachments found.")
		return &Result{}, nil
	}

	folder := path.Join(note.Dir(), note.Base())
	if err := s.ensureFolder(folder); err != nil {
		return nil, err
	}

	cfg, err := s.settings.Current()
	if err != nil {
		return nil, fmt.Errorf("relocate: load settings: %w", err)
	}
	exclude := strings.TrimSpace(cfg.ExcludeString)

	moved := 0
	for _, embed := range embeds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f, err := s.host.ResolveLink(embed.Target, note.Path)
		if err != nil {
			return nil, fmt.Errorf("relocate: resolve %q: %w", embed.Target, err)
		}
		if !movable(f, exclude) {
			continue
		}

		newPath := path.Join(folder, f.Name)
		if f.Path == newPath {
			continue
		}
		if err := s.host.Rename(f, newPath); err != nil {
			s.logger.Error("attachment move failed",
				"target", embed.Target, "from", f.Path, "to", newPath, "error", err)
			s.notifier.Notify(fmt.Sprintf("Could not move %s.", embed.Target))
			continue
		}
		moved++
	}

	if moved > 0 {
		s.notifier.Notify(fmt.Sprintf("Moved %d attachment(s) to %s.", moved, folder))
	} else {
		s.notifier.Notify("Nothing needed moving.")
	}
	return &Result{Moved: moved, Folder: folder}, nil
}

// note loads the target note, treating a missing or empty path as the
// no-active-note precondition.
func (s *Service) note(notePath string) (*models.File, string, error) {
	if notePath == "" {
		s.notifier.Notify("No active note.")
		return nil, "", apperr.ErrNoActiveNote
	}
	note, content, err := s.host.GetNote(notePath)
	if err != nil {
		s.notifier.Notify("No active note.")
		return nil, "", fmt.Errorf("relocate: %s: %w", notePath, apperr.ErrNoActiveNote)
	}
	return note, content, nil
}

// ensureFolder creates the attachment folder when absent, announcing the
// creation.
func (s *Service) ensureFolder(folder string) error {
	exists, err := s.host.FolderExists(folder)
	if err != nil {
		return fmt.Errorf("relocate: check folder %q: %w", folder, err)
	}
	if exists {
		return nil
	}
	if err := s.host.CreateFolder(folder); err != nil {
		return fmt.Errorf("relocate: create folder %q: %w", folder, err)
	}
	s.notifier.Notify(fmt.Sprintf("Created folder %s.", folder))
	return nil
}

// movable reports whether a resolved embed target is an attachment this
// service will relocate. Markdown notes, extensionless files, and files
// matching the exclusion string stay put.
func movable(f *models.File, exclude string) bool {
	if f == nil {
		return false
	}
	if f.Ext == "" || f.IsMarkdown() {
		return false
	}
	if exclude != "" &&
		(containsFold(f.Path, exclude) || containsFold(f.Name, exclude)) {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
