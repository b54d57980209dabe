package api

import (
	"github.com/starford/othala/internal/index"
	"github.com/starford/othala/internal/models"
)

// CreateNoteRequest is the request body for creating a note.
type CreateNoteRequest struct {
	Path    string `json:"path" example:"notes/hello.md" validate:"required"`
	Content string `json:"content" example:"# Hello\nWorld" validate:"required"`
}

// UpdateNoteRequest is the request body for updating a note.
type UpdateNoteRequest struct {
	Content string `json:"content" example:"# Updated\nContent" validate:"required"`
}

// NoteDetail is the full note response: index metadata plus raw content and
// the notes linking back to it.
type NoteDetail struct {
	models.File
	Content   string   `json:"content"`
	Backlinks []string `json:"backlinks,omitempty"`
}

// NoteListResponse wraps paginated note listings.
type NoteListResponse struct {
	Notes []models.File `json:"notes" validate:"required"`
	Total int           `json:"total" example:"42" validate:"required"`
}

// RelocateRequest names the note whose embedded attachments to relocate.
type RelocateRequest struct {
	Path string `json:"path" example:"journal/Trip.md" validate:"required"`
}

// RelocateResponse reports the outcome of a relocation run.
type RelocateResponse struct {
	Moved  int    `json:"moved" example:"2" validate:"required"`
	Folder string `json:"folder" example:"journal/Trip" validate:"required"`
}

// SearchResult is a single search hit in the API response.
type SearchResult = index.SearchResult

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []SearchResult `json:"results" validate:"required"`
}

type errResponse struct {
	Error string `json:"error" validate:"required"`
}

func errorBody(msg string) errResponse {
	return errResponse{Error: msg}
}
