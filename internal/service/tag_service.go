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

type ITagService interface {
	Create(ctx context.Context, ownerId bson.ObjectID, req *dto.CreateTagRequest) (*dto.TagResponse, error)
	Update(ctx context.Context, ownerId bson.ObjectID, tagId string, req *dto.UpdateTagRequest) (*dto.TagResponse, error)
	Delete(ctx context.Context, ownerId bson.ObjectID, tagId string) error
	GetAll(ctx context.Context, ownerId bson.ObjectID, skip, limit int64) ([]*dto.TagResponse, error)
	NotesWithTag(ctx context.Context, ownerId bson.ObjectID, tagId string, skip, limit int64) ([]*dto.NoteResponse, error)
}

type tagService struct {
	tags    contract.TagRepository
	notes   contract.NoteRepository
	cascade *consistency.Cascade
}

func NewTagService(tags contract.TagRepository, notes contract.NoteRepository, cascade *consistency.Cascade) ITagService {
	return &tagService{tags: tags, notes: notes, cascade: cascade}
}

func (s *tagService) Create(ctx context.Context, ownerId bson.ObjectID, req *dto.CreateTagRequest) (*dto.TagResponse, error) {
	existing, err := s.tags.FindByName(ctx, ownerId, req.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("tag name already in use")
	}

	now := time.Now().UTC()
	tag := entity.Tag{
		OwnerId:   ownerId,
		Name:      req.Name,
		Color:     req.Color,
		NoteCount: 0,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.tags.Insert(ctx, &tag); err != nil {
		return nil, err
	}
	return toTagResponse(&tag), nil
}

func (s *tagService) Update(ctx context.Context, ownerId bson.ObjectID, tagId string, req *dto.UpdateTagRequest) (*dto.TagResponse, error) {
	id, err := parseRef(tagId, "tag")
	if err != nil {
		return nil, err
	}

	tag, err := s.tags.FindByIdForOwner(ctx, id, ownerId)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, apperr.NotFound("tag not found")
	}

	fields := map[string]interface{}{}
	if req.Name != nil && *req.Name != tag.Name {
		existing, err := s.tags.FindByName(ctx, ownerId, *req.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperr.Conflict("tag name already in use")
		}
		fields["name"] = *req.Name
	}
	if req.Color != nil {
		fields["color"] = *req.Color
	}

	if err := s.tags.UpdateFields(ctx, id, ownerId, fields); err != nil {
		return nil, err
	}

	updated, err := s.tags.FindByIdForOwner(ctx, id, ownerId)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperr.NotFound("tag not found")
	}
	return toTagResponse(updated), nil
}

func (s *tagService) Delete(ctx context.Context, ownerId bson.ObjectID, tagId string) error {
	id, err := parseRef(tagId, "tag")
	if err != nil {
		return err
	}
	return s.cascade.DeleteTag(ctx, ownerId, id)
}

func (s *tagService) GetAll(ctx context.Context, ownerId bson.ObjectID, skip, limit int64) ([]*dto.TagResponse, error) {
	tags, err := s.tags.FindAllByOwner(ctx, ownerId, skip, limit)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.TagResponse, 0, len(tags))
	for _, tag := range tags {
		result = append(result, toTagResponse(tag))
	}
	return result, nil
}

func (s *tagService) NotesWithTag(ctx context.Context, ownerId bson.ObjectID, tagId string, skip, limit int64) ([]*dto.NoteResponse, error) {
	id, err := parseRef(tagId, "tag")
	if err != nil {
		return nil, err
	}

	notes, err := s.notes.Search(ctx, contract.NoteSearchFilter{
		OwnerId: ownerId,
		TagIds:  []bson.ObjectID{id},
		Skip:    skip,
		Limit:   limit,
	})
	if err != nil {
		return nil, err
	}

	result := make([]*dto.NoteResponse, 0, len(notes))
	for _, note := range notes {
		result = append(result, toNoteResponse(note))
	}
	return result, nil
}

func toTagResponse(tag *entity.Tag) *dto.TagResponse {
	return &dto.TagResponse{
		Id:        tag.Id.Hex(),
		OwnerId:   tag.OwnerId.Hex(),
		Name:      tag.Name,
		Color:     tag.Color,
		NoteCount: tag.NoteCount,
		CreatedAt: tag.CreatedAt,
		UpdatedAt: tag.UpdatedAt,
	}
}
