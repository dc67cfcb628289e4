package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type NoteFormat string

const (
	FormatMarkdown NoteFormat = "markdown"
	FormatPlain    NoteFormat = "plain"
)

// Note embeds its tag references directly; collection membership lives in a
// separate join document (CollectionMembership).
type Note struct {
	Id        bson.ObjectID          `bson:"_id,omitempty"`
	OwnerId   bson.ObjectID          `bson:"owner_id"`
	Title     string                 `bson:"title"`
	Content   string                 `bson:"content"`
	Format    NoteFormat             `bson:"format"`
	IsPinned  bool                   `bson:"is_pinned"`
	Tags      []bson.ObjectID        `bson:"tags"`
	Color     string                 `bson:"color,omitempty"`
	Metadata  map[string]interface{} `bson:"metadata,omitempty"`
	CreatedAt time.Time              `bson:"created_at"`
	UpdatedAt time.Time              `bson:"updated_at"`
}
