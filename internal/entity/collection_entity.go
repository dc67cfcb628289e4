package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Collection groups notes through CollectionMembership join documents.
// At most one collection per owner carries IsDefault; no index enforces it,
// the demote-then-set procedure in pkg/consistency does.
type Collection struct {
	Id          bson.ObjectID `bson:"_id,omitempty"`
	OwnerId     bson.ObjectID `bson:"owner_id"`
	Name        string        `bson:"name"`
	Description string        `bson:"description,omitempty"`
	Color       string        `bson:"color,omitempty"`
	IsDefault   bool          `bson:"is_default"`
	NoteCount   int64         `bson:"note_count"`
	CreatedAt   time.Time     `bson:"created_at"`
	UpdatedAt   time.Time     `bson:"updated_at"`
}
