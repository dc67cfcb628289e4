package dto

import "time"

type CreateCollectionRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description"`
	Color       string `json:"color"`
	IsDefault   bool   `json:"is_default"`
}

type UpdateCollectionRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
	IsDefault   *bool   `json:"is_default"`
}

type CollectionResponse struct {
	Id          string    `json:"id"`
	OwnerId     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color,omitempty"`
	IsDefault   bool      `json:"is_default"`
	NoteCount   int64     `json:"note_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CollectionWithNotesResponse struct {
	CollectionResponse
	Notes []*NoteResponse `json:"notes"`
}

type AddNoteToCollectionRequest struct {
	NoteId string `json:"note_id" validate:"required"`
}
