package memory

import (
	"context"
	"sync"
	"time"

	"notesphere-be/internal/entity"
	"notesphere-be/internal/pkg/apperr"
	"notesphere-be/internal/repository/contract"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type ShareRepository struct {
	mu     sync.RWMutex
	grants map[bson.ObjectID]*entity.ShareGrant
}

func NewShareRepository() *ShareRepository {
	return &ShareRepository{grants: make(map[bson.ObjectID]*entity.ShareGrant)}
}

var _ contract.ShareRepository = (*ShareRepository)(nil)

func (r *ShareRepository) Insert(ctx context.Context, grant *entity.ShareGrant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, g := range r.grants {
		if g.NoteId == grant.NoteId && g.UserId == grant.UserId {
			return apperr.Conflict("note already shared with user")
		}
	}
	if grant.Id.IsZero() {
		grant.Id = bson.NewObjectID()
	}
	cp := *grant
	r.grants[grant.Id] = &cp
	return nil
}

func (r *ShareRepository) Find(ctx context.Context, noteId, userId bson.ObjectID) (*entity.ShareGrant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, g := range r.grants {
		if g.NoteId == noteId && g.UserId == userId {
			cp := *g
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *ShareRepository) FindById(ctx context.Context, id bson.ObjectID) (*entity.ShareGrant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if g, ok := r.grants[id]; ok {
		cp := *g
		return &cp, nil
	}
	return nil, nil
}

func (r *ShareRepository) FindAllByNote(ctx context.Context, noteId bson.ObjectID) ([]*entity.ShareGrant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*entity.ShareGrant, 0)
	for _, g := range r.grants {
		if g.NoteId == noteId {
			cp := *g
			matched = append(matched, &cp)
		}
	}
	return matched, nil
}

func (r *ShareRepository) FindAllByUser(ctx context.Context, userId bson.ObjectID) ([]*entity.ShareGrant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*entity.ShareGrant, 0)
	for _, g := range r.grants {
		if g.UserId == userId {
			cp := *g
			matched = append(matched, &cp)
		}
	}
	return matched, nil
}

func (r *ShareRepository) UpdatePermission(ctx context.Context, id bson.ObjectID, permission entity.SharePermission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if g, ok := r.grants[id]; ok {
		g.Permission = permission
		g.UpdatedAt = time.Now().UTC()
	}
	return nil
}

func (r *ShareRepository) Delete(ctx context.Context, noteId, userId bson.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, g := range r.grants {
		if g.NoteId == noteId && g.UserId == userId {
			delete(r.grants, id)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *ShareRepository) DeleteAllByNote(ctx context.Context, noteId bson.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	for id, g := range r.grants {
		if g.NoteId == noteId {
			delete(r.grants, id)
			deleted++
		}
	}
	return deleted, nil
}
