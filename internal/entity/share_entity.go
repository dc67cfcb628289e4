package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type SharePermission string

const (
	PermissionRead SharePermission = "read"
	PermissionEdit SharePermission = "edit"
)

// ShareGrant gives a non-owner user read or edit access to a note.
// Unique per (note_id, user_id), enforced by an index.
type ShareGrant struct {
	Id         bson.ObjectID   `bson:"_id,omitempty"`
	NoteId     bson.ObjectID   `bson:"note_id"`
	UserId     bson.ObjectID   `bson:"user_id"`
	Permission SharePermission `bson:"permission"`
	CreatedAt  time.Time       `bson:"created_at"`
	UpdatedAt  time.Time       `bson:"updated_at"`
}
