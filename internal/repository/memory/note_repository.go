package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"notesphere-be/internal/entity"
	"notesphere-be/internal/repository/contract"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type NoteRepository struct {
	mu    sync.RWMutex
	notes map[bson.ObjectID]*entity.Note
}

func NewNoteRepository() *NoteRepository {
	return &NoteRepository{notes: make(map[bson.ObjectID]*entity.Note)}
}

var _ contract.NoteRepository = (*NoteRepository)(nil)

func (r *NoteRepository) Insert(ctx context.Context, note *entity.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if note.Id.IsZero() {
		note.Id = bson.NewObjectID()
	}
	cp := *note
	r.notes[note.Id] = &cp
	return nil
}

func (r *NoteRepository) FindById(ctx context.Context, id bson.ObjectID) (*entity.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if n, ok := r.notes[id]; ok {
		cp := *n
		return &cp, nil
	}
	return nil, nil
}

func (r *NoteRepository) FindByIdForOwner(ctx context.Context, id, ownerId bson.ObjectID) (*entity.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if n, ok := r.notes[id]; ok && n.OwnerId == ownerId {
		cp := *n
		return &cp, nil
	}
	return nil, nil
}

func matchesFilter(n *entity.Note, f contract.NoteSearchFilter) bool {
	if n.OwnerId != f.OwnerId {
		return false
	}
	if len(f.TagIds) > 0 {
		found := false
		for _, want := range f.TagIds {
			for _, have := range n.Tags {
				if want == have {
					found = true
				}
			}
		}
		if !found {
			return false
		}
	}
	if f.PinnedOnly && !n.IsPinned {
		return false
	}
	if f.ScopeToIds {
		inScope := false
		for _, id := range f.NoteIds {
			if id == n.Id {
				inScope = true
			}
		}
		if !inScope {
			return false
		}
	}
	if f.Text != "" {
		q := strings.ToLower(f.Text)
		if !strings.Contains(strings.ToLower(n.Title), q) &&
			!strings.Contains(strings.ToLower(n.Content), q) {
			return false
		}
	}
	return true
}

func (r *NoteRepository) Search(ctx context.Context, filter contract.NoteSearchFilter) ([]*entity.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*entity.Note, 0)
	for _, n := range r.notes {
		if matchesFilter(n, filter) {
			cp := *n
			matched = append(matched, &cp)
		}
	}
	sortNotesByUpdatedDesc(matched)
	return page(matched, filter.Skip, filter.Limit), nil
}

func (r *NoteRepository) FindByIds(ctx context.Context, ids []bson.ObjectID, skip, limit int64) ([]*entity.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*entity.Note, 0, len(ids))
	for _, id := range ids {
		if n, ok := r.notes[id]; ok {
			cp := *n
			matched = append(matched, &cp)
		}
	}
	sortNotesByUpdatedDesc(matched)
	return page(matched, skip, limit), nil
}

func (r *NoteRepository) UpdateFields(ctx context.Context, id, ownerId bson.ObjectID, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.notes[id]
	if !ok || n.OwnerId != ownerId {
		return nil
	}
	for key, value := range fields {
		switch key {
		case "title":
			n.Title = value.(string)
		case "content":
			n.Content = value.(string)
		case "format":
			n.Format = value.(entity.NoteFormat)
		case "is_pinned":
			n.IsPinned = value.(bool)
		case "color":
			n.Color = value.(string)
		case "metadata":
			n.Metadata = value.(map[string]interface{})
		case "tags":
			n.Tags = value.([]bson.ObjectID)
		}
	}
	n.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *NoteRepository) PullTag(ctx context.Context, ownerId, tagId bson.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var touched int64
	for _, n := range r.notes {
		if n.OwnerId != ownerId {
			continue
		}
		kept := n.Tags[:0]
		pulled := false
		for _, t := range n.Tags {
			if t == tagId {
				pulled = true
				continue
			}
			kept = append(kept, t)
		}
		if pulled {
			n.Tags = kept
			touched++
		}
	}
	return touched, nil
}

func (r *NoteRepository) DeleteByIdForOwner(ctx context.Context, id, ownerId bson.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n, ok := r.notes[id]; ok && n.OwnerId == ownerId {
		delete(r.notes, id)
		return 1, nil
	}
	return 0, nil
}
