package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// CollectionMembership is the join between a collection and a note.
// Exactly one document per (collection_id, note_id); both sides belong to the
// same owner.
type CollectionMembership struct {
	Id           bson.ObjectID `bson:"_id,omitempty"`
	CollectionId bson.ObjectID `bson:"collection_id"`
	NoteId       bson.ObjectID `bson:"note_id"`
	AddedAt      time.Time     `bson:"added_at"`
}
