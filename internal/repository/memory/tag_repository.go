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

type TagRepository struct {
	mu   sync.RWMutex
	tags map[bson.ObjectID]*entity.Tag
}

func NewTagRepository() *TagRepository {
	return &TagRepository{tags: make(map[bson.ObjectID]*entity.Tag)}
}

var _ contract.TagRepository = (*TagRepository)(nil)

func (r *TagRepository) Insert(ctx context.Context, tag *entity.Tag) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if tag.Id.IsZero() {
		tag.Id = bson.NewObjectID()
	}
	cp := *tag
	r.tags[tag.Id] = &cp
	return nil
}

func (r *TagRepository) FindByIdForOwner(ctx context.Context, id, ownerId bson.ObjectID) (*entity.Tag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if t, ok := r.tags[id]; ok && t.OwnerId == ownerId {
		cp := *t
		return &cp, nil
	}
	return nil, nil
}

func (r *TagRepository) FindByName(ctx context.Context, ownerId bson.ObjectID, name string) (*entity.Tag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.tags {
		if t.OwnerId == ownerId && t.Name == name {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *TagRepository) FindAllByOwner(ctx context.Context, ownerId bson.ObjectID, skip, limit int64) ([]*entity.Tag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*entity.Tag, 0)
	for _, t := range r.tags {
		if t.OwnerId == ownerId {
			cp := *t
			matched = append(matched, &cp)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	return page(matched, skip, limit), nil
}

func (r *TagRepository) UpdateFields(ctx context.Context, id, ownerId bson.ObjectID, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tags[id]
	if !ok || t.OwnerId != ownerId {
		return nil
	}
	for key, value := range fields {
		switch key {
		case "name":
			t.Name = value.(string)
		case "color":
			t.Color = value.(string)
		}
	}
	t.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *TagRepository) IncNoteCounts(ctx context.Context, ids []bson.ObjectID, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range ids {
		if t, ok := r.tags[id]; ok {
			t.NoteCount += int64(delta)
		}
	}
	return nil
}

func (r *TagRepository) DeleteByIdForOwner(ctx context.Context, id, ownerId bson.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.tags[id]; ok && t.OwnerId == ownerId {
		delete(r.tags, id)
		return 1, nil
	}
	return 0, nil
}
