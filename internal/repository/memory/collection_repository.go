package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"notesphere-be/internal/entity"
	"notesphere-be/internal/repository/contract"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type CollectionRepository struct {
	mu          sync.RWMutex
	collections map[bson.ObjectID]*entity.Collection
}

func NewCollectionRepository() *CollectionRepository {
	return &CollectionRepository{collections: make(map[bson.ObjectID]*entity.Collection)}
}

var _ contract.CollectionRepository = (*CollectionRepository)(nil)

func (r *CollectionRepository) Insert(ctx context.Context, collection *entity.Collection) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if collection.Id.IsZero() {
		collection.Id = bson.NewObjectID()
	}
	cp := *collection
	r.collections[collection.Id] = &cp
	return nil
}

func (r *CollectionRepository) FindByIdForOwner(ctx context.Context, id, ownerId bson.ObjectID) (*entity.Collection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if c, ok := r.collections[id]; ok && c.OwnerId == ownerId {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *CollectionRepository) FindAllByOwner(ctx context.Context, ownerId bson.ObjectID, skip, limit int64) ([]*entity.Collection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*entity.Collection, 0)
	for _, c := range r.collections {
		if c.OwnerId == ownerId {
			cp := *c
			matched = append(matched, &cp)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].IsDefault != matched[j].IsDefault {
			return matched[i].IsDefault
		}
		return matched[i].Name < matched[j].Name
	})
	return page(matched, skip, limit), nil
}

func (r *CollectionRepository) UpdateFields(ctx context.Context, id, ownerId bson.ObjectID, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.collections[id]
	if !ok || c.OwnerId != ownerId {
		return nil
	}
	for key, value := range fields {
		switch key {
		case "name":
			c.Name = value.(string)
		case "description":
			c.Description = value.(string)
		case "color":
			c.Color = value.(string)
		case "is_default":
			c.IsDefault = value.(bool)
		}
	}
	c.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *CollectionRepository) IncNoteCount(ctx context.Context, id bson.ObjectID, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.collections[id]; ok {
		c.NoteCount += int64(delta)
	}
	return nil
}

func (r *CollectionRepository) DemoteDefaults(ctx context.Context, ownerId bson.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var demoted int64
	for _, c := range r.collections {
		if c.OwnerId == ownerId && c.IsDefault {
			c.IsDefault = false
			c.UpdatedAt = time.Now().UTC()
			demoted++
		}
	}
	return demoted, nil
}

func (r *CollectionRepository) DeleteByIdForOwner(ctx context.Context, id, ownerId bson.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.collections[id]; ok && c.OwnerId == ownerId {
		delete(r.collections, id)
		return 1, nil
	}
	return 0, nil
}
