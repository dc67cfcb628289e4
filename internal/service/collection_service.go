package service

import (
	"context"
	"time"

	"notesphere-be/internal/dto"
	"notesphere-be/internal/entity"
	"notesphere-be/internal/pkg/apperr"
	"notesphere-be/internal/repository/contract"
	"notesphere-be/pkg/consistency"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type ICollectionService interface {
	Create(ctx context.Context, ownerId bson.ObjectID, req *dto.CreateCollectionRequest) (*dto.CollectionResponse, error)
	Update(ctx context.Context, ownerId bson.ObjectID, collectionId string, req *dto.UpdateCollectionRequest) (*dto.CollectionResponse, error)
	Delete(ctx context.Context, ownerId bson.ObjectID, collectionId string) error
	GetAll(ctx context.Context, ownerId bson.ObjectID, skip, limit int64) ([]*dto.CollectionResponse, error)
	ShowWithNotes(ctx context.Context, ownerId bson.ObjectID, collectionId string, skip, limit int64) (*dto.CollectionWithNotesResponse, error)
	AddNote(ctx context.Context, ownerId bson.ObjectID, collectionId, noteId string) error
	RemoveNote(ctx context.Context, ownerId bson.ObjectID, collectionId, noteId string) error
}

type collectionService struct {
	collections contract.CollectionRepository
	notes       contract.NoteRepository
	memberships contract.MembershipRepository
	counters    *consistency.Counters
	defaultFlag *consistency.DefaultFlag
	cascade     *consistency.Cascade
}

func NewCollectionService(
	collections contract.CollectionRepository,
	notes contract.NoteRepository,
	memberships contract.MembershipRepository,
	counters *consistency.Counters,
	defaultFlag *consistency.DefaultFlag,
	cascade *consistency.Cascade,
) ICollectionService {
	return &collectionService{
		collections: collections,
		notes:       notes,
		memberships: memberships,
		counters:    counters,
		defaultFlag: defaultFlag,
		cascade:     cascade,
	}
}

func (s *collectionService) Create(ctx context.Context, ownerId bson.ObjectID, req *dto.CreateCollectionRequest) (*dto.CollectionResponse, error) {
	if req.IsDefault {
		if err := s.defaultFlag.ClaimDefault(ctx, ownerId); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	collection := entity.Collection{
		OwnerId:     ownerId,
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		IsDefault:   req.IsDefault,
		NoteCount:   0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.collections.Insert(ctx, &collection); err != nil {
		return nil, err
	}
	return toCollectionResponse(&collection), nil
}

func (s *collectionService) Update(ctx context.Context, ownerId bson.ObjectID, collectionId string, req *dto.UpdateCollectionRequest) (*dto.CollectionResponse, error) {
	id, err := parseRef(collectionId, "collection")
	if err != nil {
		return nil, err
	}

	collection, err := s.collections.FindByIdForOwner(ctx, id, ownerId)
	if err != nil {
		return nil, err
	}
	if collection == nil {
		return nil, apperr.NotFound("collection not found")
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Color != nil {
		fields["color"] = *req.Color
	}
	if req.IsDefault != nil {
		if *req.IsDefault && !collection.IsDefault {
			// Demote the current default before this one takes the flag.
			if err := s.defaultFlag.ClaimDefault(ctx, ownerId); err != nil {
				return nil, err
			}
		}
		fields["is_default"] = *req.IsDefault
	}

	if err := s.collections.UpdateFields(ctx, id, ownerId, fields); err != nil {
		return nil, err
	}

	updated, err := s.collections.FindByIdForOwner(ctx, id, ownerId)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperr.NotFound("collection not found")
	}
	return toCollectionResponse(updated), nil
}

func (s *collectionService) Delete(ctx context.Context, ownerId bson.ObjectID, collectionId string) error {
	id, err := parseRef(collectionId, "collection")
	if err != nil {
		return err
	}
	return s.cascade.DeleteCollection(ctx, ownerId, id)
}

func (s *collectionService) GetAll(ctx context.Context, ownerId bson.ObjectID, skip, limit int64) ([]*dto.CollectionResponse, error) {
	collections, err := s.collections.FindAllByOwner(ctx, ownerId, skip, limit)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.CollectionResponse, 0, len(collections))
	for _, collection := range collections {
		result = append(result, toCollectionResponse(collection))
	}
	return result, nil
}

func (s *collectionService) ShowWithNotes(ctx context.Context, ownerId bson.ObjectID, collectionId string, skip, limit int64) (*dto.CollectionWithNotesResponse, error) {
	id, err := parseRef(collectionId, "collection")
	if err != nil {
		return nil, err
	}

	collection, err := s.collections.FindByIdForOwner(ctx, id, ownerId)
	if err != nil {
		return nil, err
	}
	if collection == nil {
		return nil, apperr.NotFound("collection not found")
	}

	res := &dto.CollectionWithNotesResponse{
		CollectionResponse: *toCollectionResponse(collection),
		Notes:              make([]*dto.NoteResponse, 0),
	}

	memberships, err := s.memberships.FindAllByCollection(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(memberships) == 0 {
		return res, nil
	}

	ids := make([]bson.ObjectID, 0, len(memberships))
	for _, m := range memberships {
		ids = append(ids, m.NoteId)
	}
	notes, err := s.notes.Search(ctx, contract.NoteSearchFilter{
		OwnerId:    ownerId,
		ScopeToIds: true,
		NoteIds:    ids,
		Skip:       skip,
		Limit:      limit,
	})
	if err != nil {
		return nil, err
	}
	for _, note := range notes {
		res.Notes = append(res.Notes, toNoteResponse(note))
	}
	return res, nil
}

// AddNote is idempotent: adding a note that is already a member succeeds
// without touching the counter again.
func (s *collectionService) AddNote(ctx context.Context, ownerId bson.ObjectID, collectionId, noteId string) error {
	cid, err := parseRef(collectionId, "collection")
	if err != nil {
		return err
	}
	nid, err := parseRef(noteId, "note")
	if err != nil {
		return err
	}

	collection, err := s.collections.FindByIdForOwner(ctx, cid, ownerId)
	if err != nil {
		return err
	}
	if collection == nil {
		return apperr.NotFound("collection not found")
	}
	note, err := s.notes.FindByIdForOwner(ctx, nid, ownerId)
	if err != nil {
		return err
	}
	if note == nil {
		return apperr.NotFound("note not found")
	}

	existing, err := s.memberships.Find(ctx, cid, nid)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	membership := entity.CollectionMembership{
		CollectionId: cid,
		NoteId:       nid,
		AddedAt:      time.Now().UTC(),
	}
	if err := s.memberships.Insert(ctx, &membership); err != nil {
		if apperr.IsKind(err, apperr.KindConflict) {
			// Lost a race with an identical add; the row exists, so the
			// winner's counter increment stands alone.
			return nil
		}
		return err
	}

	return s.counters.AdjustCollectionCount(ctx, cid, +1)
}

func (s *collectionService) RemoveNote(ctx context.Context, ownerId bson.ObjectID, collectionId, noteId string) error {
	cid, err := parseRef(collectionId, "collection")
	if err != nil {
		return err
	}
	nid, err := parseRef(noteId, "note")
	if err != nil {
		return err
	}

	collection, err := s.collections.FindByIdForOwner(ctx, cid, ownerId)
	if err != nil {
		return err
	}
	if collection == nil {
		return apperr.NotFound("collection not found")
	}

	deleted, err := s.memberships.Delete(ctx, cid, nid)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return apperr.NotFound("note is not in collection")
	}

	return s.counters.AdjustCollectionCount(ctx, cid, -1)
}

func toCollectionResponse(collection *entity.Collection) *dto.CollectionResponse {
	return &dto.CollectionResponse{
		Id:          collection.Id.Hex(),
		OwnerId:     collection.OwnerId.Hex(),
		Name:        collection.Name,
		Description: collection.Description,
		Color:       collection.Color,
		IsDefault:   collection.IsDefault,
		NoteCount:   collection.NoteCount,
		CreatedAt:   collection.CreatedAt,
		UpdatedAt:   collection.UpdatedAt,
	}
}
