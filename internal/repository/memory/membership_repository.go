package memory

import (
	"context"
	"sync"

	"notesphere-be/internal/entity"
	"notesphere-be/internal/pkg/apperr"
	"notesphere-be/internal/repository/contract"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type MembershipRepository struct {
	mu          sync.RWMutex
	memberships map[string]*entity.CollectionMembership
}

func NewMembershipRepository() *MembershipRepository {
	return &MembershipRepository{memberships: make(map[string]*entity.CollectionMembership)}
}

var _ contract.MembershipRepository = (*MembershipRepository)(nil)

func (r *MembershipRepository) Insert(ctx context.Context, membership *entity.CollectionMembership) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := pairKey(membership.CollectionId, membership.NoteId)
	if _, exists := r.memberships[key]; exists {
		return apperr.Conflict("note already in collection")
	}
	if membership.Id.IsZero() {
		membership.Id = bson.NewObjectID()
	}
	cp := *membership
	r.memberships[key] = &cp
	return nil
}

func (r *MembershipRepository) Find(ctx context.Context, collectionId, noteId bson.ObjectID) (*entity.CollectionMembership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if m, ok := r.memberships[pairKey(collectionId, noteId)]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, nil
}

func (r *MembershipRepository) FindAllByCollection(ctx context.Context, collectionId bson.ObjectID) ([]*entity.CollectionMembership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*entity.CollectionMembership, 0)
	for _, m := range r.memberships {
		if m.CollectionId == collectionId {
			cp := *m
			matched = append(matched, &cp)
		}
	}
	return matched, nil
}

func (r *MembershipRepository) FindAllByNote(ctx context.Context, noteId bson.ObjectID) ([]*entity.CollectionMembership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*entity.CollectionMembership, 0)
	for _, m := range r.memberships {
		if m.NoteId == noteId {
			cp := *m
			matched = append(matched, &cp)
		}
	}
	return matched, nil
}

func (r *MembershipRepository) Delete(ctx context.Context, collectionId, noteId bson.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := pairKey(collectionId, noteId)
	if _, ok := r.memberships[key]; ok {
		delete(r.memberships, key)
		return 1, nil
	}
	return 0, nil
}

func (r *MembershipRepository) DeleteAllByCollection(ctx context.Context, collectionId bson.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	for key, m := range r.memberships {
		if m.CollectionId == collectionId {
			delete(r.memberships, key)
			deleted++
		}
	}
	return deleted, nil
}

func (r *MembershipRepository) DeleteAllByNote(ctx context.Context, noteId bson.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	for key, m := range r.memberships {
		if m.NoteId == noteId {
			delete(r.memberships, key)
			deleted++
		}
	}
	return deleted, nil
}
