// Package consistency holds the procedures that keep derived state honest
// across multi-document mutations: reference counters, the per-owner default
// collection flag, and cascade deletion.
//
// The store only guarantees single-document atomicity, so none of these
// procedures are atomic as a whole. Each one is written as an ordered,
// idempotent-where-possible sequence with a known partial-failure state:
// counters adjust via $inc (concurrent adjustments never lose updates, but a
// crash between a membership write and its counter write leaves the counter
// off by one until the next write touches it), and cascades delete the owning
// record first so a crash leaves inert orphans rather than dangling primaries.
// No reconciliation job repairs drift; it would itself need cross-document
// consistency to be exact.
package consistency

import (
	"context"
	"fmt"

	"notesphere-be/internal/repository/contract"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Counters maintains Tag.note_count and Collection.note_count strictly
// through atomic increments.
type Counters struct {
	tags        contract.TagRepository
	collections contract.CollectionRepository
}

func NewCounters(tags contract.TagRepository, collections contract.CollectionRepository) *Counters {
	return &Counters{tags: tags, collections: collections}
}

func (c *Counters) AdjustTagCounts(ctx context.Context, tagIds []bson.ObjectID, delta int) error {
	if len(tagIds) == 0 {
		return nil
	}
	if err := c.tags.IncNoteCounts(ctx, tagIds, delta); err != nil {
		return fmt.Errorf("adjust tag counts: %w", err)
	}
	return nil
}

func (c *Counters) AdjustCollectionCount(ctx context.Context, collectionId bson.ObjectID, delta int) error {
	if err := c.collections.IncNoteCount(ctx, collectionId, delta); err != nil {
		return fmt.Errorf("adjust collection count: %w", err)
	}
	return nil
}

// TagSetDiff computes which tag references were added and which removed
// between two tag sets. Order is not significant; duplicates are not expected.
func TagSetDiff(oldTags, newTags []bson.ObjectID) (added, removed []bson.ObjectID) {
	oldSet := make(map[bson.ObjectID]struct{}, len(oldTags))
	for _, id := range oldTags {
		oldSet[id] = struct{}{}
	}
	newSet := make(map[bson.ObjectID]struct{}, len(newTags))
	for _, id := range newTags {
		newSet[id] = struct{}{}
	}

	for _, id := range newTags {
		if _, ok := oldSet[id]; !ok {
			added = append(added, id)
		}
	}
	for _, id := range oldTags {
		if _, ok := newSet[id]; !ok {
			removed = append(removed, id)
		}
	}
	return added, removed
}
