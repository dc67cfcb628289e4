package events

import "time"

const TopicNoteLifecycle = "note.lifecycle"

const (
	NoteCreated = "created"
	NoteUpdated = "updated"
	NoteDeleted = "deleted"
	NoteShared  = "shared"
)

// NoteEvent is the payload published for every note lifecycle change.
type NoteEvent struct {
	Type       string    `json:"type"` // created|updated|deleted|shared
	NoteId     string    `json:"note_id"`
	OwnerId    string    `json:"owner_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
