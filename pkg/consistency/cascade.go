package consistency

import (
	"context"
	"fmt"

	"notesphere-be/internal/pkg/apperr"
	"notesphere-be/internal/pkg/logger"
	"notesphere-be/internal/repository/contract"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Cascade removes dependent join records, grants and counter contributions
// when an owning entity is deleted. Ordering rule: confirm and delete the
// owning record first, then clean up the small side. A crash partway leaves
// orphaned dependents, which reads never surface because they always join
// through the owning entity.
type Cascade struct {
	notes       contract.NoteRepository
	tags        contract.TagRepository
	collections contract.CollectionRepository
	memberships contract.MembershipRepository
	shares      contract.ShareRepository
	counters    *Counters
	log         logger.ILogger
}

func NewCascade(
	notes contract.NoteRepository,
	tags contract.TagRepository,
	collections contract.CollectionRepository,
	memberships contract.MembershipRepository,
	shares contract.ShareRepository,
	counters *Counters,
	log logger.ILogger,
) *Cascade {
	return &Cascade{
		notes:       notes,
		tags:        tags,
		collections: collections,
		memberships: memberships,
		shares:      shares,
		counters:    counters,
		log:         log,
	}
}

// DeleteNote deletes the note, then decrements the counters of every tag it
// referenced, then deletes its memberships and share grants.
func (c *Cascade) DeleteNote(ctx context.Context, ownerId, noteId bson.ObjectID) error {
	note, err := c.notes.FindByIdForOwner(ctx, noteId, ownerId)
	if err != nil {
		return fmt.Errorf("fetch note: %w", err)
	}
	if note == nil {
		return apperr.NotFound("note not found")
	}

	deleted, err := c.notes.DeleteByIdForOwner(ctx, noteId, ownerId)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if deleted == 0 {
		// Raced with another delete; the loser reports not found.
		return apperr.NotFound("note not found")
	}

	if err := c.counters.AdjustTagCounts(ctx, note.Tags, -1); err != nil {
		return err
	}

	removed, err := c.memberships.DeleteAllByNote(ctx, noteId)
	if err != nil {
		return fmt.Errorf("delete note memberships: %w", err)
	}
	revoked, err := c.shares.DeleteAllByNote(ctx, noteId)
	if err != nil {
		return fmt.Errorf("delete note grants: %w", err)
	}

	c.log.Info("cascade", "note deleted", map[string]interface{}{
		"note_id":     noteId.Hex(),
		"memberships": removed,
		"grants":      revoked,
	})
	return nil
}

// DeleteTag deletes the tag, then pulls its reference out of every note of
// the owner. No counter adjustment: the counter document died with the tag.
func (c *Cascade) DeleteTag(ctx context.Context, ownerId, tagId bson.ObjectID) error {
	tag, err := c.tags.FindByIdForOwner(ctx, tagId, ownerId)
	if err != nil {
		return fmt.Errorf("fetch tag: %w", err)
	}
	if tag == nil {
		return apperr.NotFound("tag not found")
	}

	deleted, err := c.tags.DeleteByIdForOwner(ctx, tagId, ownerId)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	if deleted == 0 {
		return apperr.NotFound("tag not found")
	}

	pulled, err := c.notes.PullTag(ctx, ownerId, tagId)
	if err != nil {
		return fmt.Errorf("pull tag from notes: %w", err)
	}

	c.log.Info("cascade", "tag deleted", map[string]interface{}{
		"tag_id":        tagId.Hex(),
		"notes_touched": pulled,
	})
	return nil
}

// DeleteCollection deletes the collection and its membership rows. The notes
// themselves, and their tags, are untouched.
func (c *Cascade) DeleteCollection(ctx context.Context, ownerId, collectionId bson.ObjectID) error {
	collection, err := c.collections.FindByIdForOwner(ctx, collectionId, ownerId)
	if err != nil {
		return fmt.Errorf("fetch collection: %w", err)
	}
	if collection == nil {
		return apperr.NotFound("collection not found")
	}

	deleted, err := c.collections.DeleteByIdForOwner(ctx, collectionId, ownerId)
	if err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}
	if deleted == 0 {
		return apperr.NotFound("collection not found")
	}

	removed, err := c.memberships.DeleteAllByCollection(ctx, collectionId)
	if err != nil {
		return fmt.Errorf("delete collection memberships: %w", err)
	}

	c.log.Info("cascade", "collection deleted", map[string]interface{}{
		"collection_id": collectionId.Hex(),
		"memberships":   removed,
	})
	return nil
}
