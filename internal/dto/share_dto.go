package dto

import "time"

type ShareNoteRequest struct {
	UserIds    []string `json:"user_ids" validate:"required,min=1"`
	Permission string   `json:"permission" validate:"omitempty,oneof=read edit"`
}

type UpdateSharePermissionRequest struct {
	Permission string `json:"permission" validate:"required,oneof=read edit"`
}

type ShareGrantResponse struct {
	Id         string    `json:"id"`
	NoteId     string    `json:"note_id"`
	UserId     string    `json:"user_id"`
	Permission string    `json:"permission"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ShareNoteResponse reports the batch outcome: targets that got (or had
// updated) a grant, and targets rejected with the reason. The batch never
// aborts because some targets failed.
type ShareNoteResponse struct {
	Granted  []*ShareGrantResponse `json:"granted"`
	Rejected []*RejectedShare      `json:"rejected"`
}

type RejectedShare struct {
	UserId string `json:"user_id"`
	Reason string `json:"reason"`
}
