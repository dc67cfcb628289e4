package dto

import "time"

type CreateNoteRequest struct {
	Title    string                 `json:"title" validate:"required,min=1,max=200"`
	Content  string                 `json:"content" validate:"required,min=1"`
	Format   string                 `json:"format" validate:"omitempty,oneof=markdown plain"`
	IsPinned bool                   `json:"is_pinned"`
	Tags     []string               `json:"tags"`
	Color    string                 `json:"color"`
	Metadata map[string]interface{} `json:"metadata"`
}

type UpdateNoteRequest struct {
	Title    *string                `json:"title" validate:"omitempty,min=1,max=200"`
	Content  *string                `json:"content" validate:"omitempty,min=1"`
	Format   *string                `json:"format" validate:"omitempty,oneof=markdown plain"`
	IsPinned *bool                  `json:"is_pinned"`
	Tags     *[]string              `json:"tags"`
	Color    *string                `json:"color"`
	Metadata map[string]interface{} `json:"metadata"`
}

// ListNotesQuery carries the composed read filters. Limit is bounded at the
// controller before it reaches the service.
type ListNotesQuery struct {
	TagIds       []string
	PinnedOnly   bool
	CollectionId string
	Search       string
	Skip         int64
	Limit        int64
}

type NoteResponse struct {
	Id        string                 `json:"id"`
	OwnerId   string                 `json:"owner_id"`
	Title     string                 `json:"title"`
	Content   string                 `json:"content"`
	Format    string                 `json:"format"`
	IsPinned  bool                   `json:"is_pinned"`
	Tags      []string               `json:"tags"`
	Color     string                 `json:"color,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// SharedNoteResponse is a borrowed note annotated with the caller's
// permission so the client can render read-only vs editable.
type SharedNoteResponse struct {
	NoteResponse
	Permission string `json:"permission"`
}
