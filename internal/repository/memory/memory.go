// Package memory holds map-backed repository implementations used by the
// service and consistency tests. They mirror the behavior of the mongo
// implementations, including unique-key conflicts and not-found as (nil, nil).
package memory

import (
	"sort"

	"notesphere-be/internal/entity"

	"go.mongodb.org/mongo-driver/v2/bson"
)

func pairKey(a, b bson.ObjectID) string {
	return a.Hex() + "/" + b.Hex()
}

func sortNotesByUpdatedDesc(notes []*entity.Note) {
	sort.Slice(notes, func(i, j int) bool {
		return notes[i].UpdatedAt.After(notes[j].UpdatedAt)
	})
}

func page[T any](items []T, skip, limit int64) []T {
	if skip >= int64(len(items)) {
		return []T{}
	}
	items = items[skip:]
	if limit > 0 && limit < int64(len(items)) {
		items = items[:limit]
	}
	return items
}
