package consistency

import (
	"context"
	"fmt"

	"notesphere-be/internal/repository/contract"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// DefaultFlag enforces the singleton invariant: at most one collection per
// owner with is_default set. No index backs it; the demote-then-set ordering
// does. Two racing claims can transiently leave zero defaults; the next
// default-setting write corrects that, so no per-owner serialization is used.
type DefaultFlag struct {
	collections contract.CollectionRepository
}

func NewDefaultFlag(collections contract.CollectionRepository) *DefaultFlag {
	return &DefaultFlag{collections: collections}
}

// ClaimDefault demotes every current default collection of the owner. The
// caller persists its own record (with is_default set) after this returns.
func (d *DefaultFlag) ClaimDefault(ctx context.Context, ownerId bson.ObjectID) error {
	if _, err := d.collections.DemoteDefaults(ctx, ownerId); err != nil {
		return fmt.Errorf("demote default collections: %w", err)
	}
	return nil
}
