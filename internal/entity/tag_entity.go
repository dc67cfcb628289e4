package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Tag names are unique per owner. NoteCount is derived state maintained by
// atomic increments against actual note references.
type Tag struct {
	Id        bson.ObjectID `bson:"_id,omitempty"`
	OwnerId   bson.ObjectID `bson:"owner_id"`
	Name      string        `bson:"name"`
	Color     string        `bson:"color,omitempty"`
	NoteCount int64         `bson:"note_count"`
	CreatedAt time.Time     `bson:"created_at"`
	UpdatedAt time.Time     `bson:"updated_at"`
}
