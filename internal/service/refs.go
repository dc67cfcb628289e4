package service

import (
	"notesphere-be/internal/pkg/apperr"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// parseRef validates an identity value before it can reach the store.
// Malformed references are rejected locally.
func parseRef(hex, what string) (bson.ObjectID, error) {
	id, err := bson.ObjectIDFromHex(hex)
	if err != nil {
		return bson.ObjectID{}, apperr.InvalidReference("invalid " + what + " id")
	}
	return id, nil
}

// parseRefSet converts a set of id strings, silently dropping malformed
// entries. Used on query filters and tag sets, where the original behavior
// is to ignore bad ids rather than fail the request.
func parseRefSet(hexes []string) []bson.ObjectID {
	ids := make([]bson.ObjectID, 0, len(hexes))
	seen := make(map[bson.ObjectID]struct{}, len(hexes))
	for _, h := range hexes {
		id, err := bson.ObjectIDFromHex(h)
		if err != nil {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

func hexSet(ids []bson.ObjectID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Hex())
	}
	return out
}
