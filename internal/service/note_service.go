package service

import (
	"context"
	"time"

	"notesphere-be/internal/dto"
	"notesphere-be/internal/entity"
	"notesphere-be/internal/pkg/apperr"
	"notesphere-be/internal/pkg/logger"
	"notesphere-be/internal/repository/contract"
	"notesphere-be/pkg/consistency"
	"notesphere-be/pkg/events"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type INoteService interface {
	Create(ctx context.Context, ownerId bson.ObjectID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	Show(ctx context.Context, callerId bson.ObjectID, noteId string) (*dto.NoteResponse, error)
	Update(ctx context.Context, ownerId bson.ObjectID, noteId string, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error)
	Delete(ctx context.Context, ownerId bson.ObjectID, noteId string) error
	List(ctx context.Context, ownerId bson.ObjectID, query *dto.ListNotesQuery) ([]*dto.NoteResponse, error)
	SharedWithMe(ctx context.Context, userId bson.ObjectID, skip, limit int64) ([]*dto.SharedNoteResponse, error)
}

type noteService struct {
	notes       contract.NoteRepository
	memberships contract.MembershipRepository
	shares      contract.ShareRepository
	counters    *consistency.Counters
	cascade     *consistency.Cascade
	publisher   *events.Publisher
	log         logger.ILogger
}

func NewNoteService(
	notes contract.NoteRepository,
	memberships contract.MembershipRepository,
	shares contract.ShareRepository,
	counters *consistency.Counters,
	cascade *consistency.Cascade,
	publisher *events.Publisher,
	log logger.ILogger,
) INoteService {
	return &noteService{
		notes:       notes,
		memberships: memberships,
		shares:      shares,
		counters:    counters,
		cascade:     cascade,
		publisher:   publisher,
		log:         log,
	}
}

func (s *noteService) Create(ctx context.Context, ownerId bson.ObjectID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	format := entity.NoteFormat(req.Format)
	if format == "" {
		format = entity.FormatMarkdown
	}

	now := time.Now().UTC()
	note := entity.Note{
		OwnerId:   ownerId,
		Title:     req.Title,
		Content:   req.Content,
		Format:    format,
		IsPinned:  req.IsPinned,
		Tags:      parseRefSet(req.Tags),
		Color:     req.Color,
		Metadata:  req.Metadata,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.notes.Insert(ctx, &note); err != nil {
		return nil, err
	}

	// Counter write follows the note write; not atomic with it (see
	// pkg/consistency for the partial-failure contract).
	if err := s.counters.AdjustTagCounts(ctx, note.Tags, +1); err != nil {
		return nil, err
	}

	s.publishNoteEvent(events.NoteCreated, &note)
	return toNoteResponse(&note), nil
}

func (s *noteService) Show(ctx context.Context, callerId bson.ObjectID, noteId string) (*dto.NoteResponse, error) {
	id, err := parseRef(noteId, "note")
	if err != nil {
		return nil, err
	}

	note, err := s.notes.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperr.NotFound("note not found")
	}
	if note.OwnerId != callerId {
		// Non-owners may read only through a grant; without one, the note
		// does not exist as far as the caller can tell.
		grant, err := s.shares.Find(ctx, id, callerId)
		if err != nil {
			return nil, err
		}
		if grant == nil {
			return nil, apperr.NotFound("note not found")
		}
	}

	return toNoteResponse(note), nil
}

func (s *noteService) Update(ctx context.Context, ownerId bson.ObjectID, noteId string, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	id, err := parseRef(noteId, "note")
	if err != nil {
		return nil, err
	}

	note, err := s.resolveEditable(ctx, ownerId, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Content != nil {
		fields["content"] = *req.Content
	}
	if req.Format != nil {
		fields["format"] = entity.NoteFormat(*req.Format)
	}
	if req.IsPinned != nil {
		fields["is_pinned"] = *req.IsPinned
	}
	if req.Color != nil {
		fields["color"] = *req.Color
	}
	if req.Metadata != nil {
		fields["metadata"] = req.Metadata
	}

	if req.Tags != nil {
		newTags := parseRefSet(*req.Tags)
		fields["tags"] = newTags

		added, removed := consistency.TagSetDiff(note.Tags, newTags)
		if err := s.counters.AdjustTagCounts(ctx, removed, -1); err != nil {
			return nil, err
		}
		if err := s.counters.AdjustTagCounts(ctx, added, +1); err != nil {
			return nil, err
		}
	}

	if err := s.notes.UpdateFields(ctx, id, note.OwnerId, fields); err != nil {
		return nil, err
	}

	updated, err := s.notes.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperr.NotFound("note not found")
	}

	s.publishNoteEvent(events.NoteUpdated, updated)
	return toNoteResponse(updated), nil
}

// resolveEditable returns the note when the caller is the owner or holds an
// edit grant. Everything else reads as not found.
func (s *noteService) resolveEditable(ctx context.Context, callerId, id bson.ObjectID) (*entity.Note, error) {
	note, err := s.notes.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperr.NotFound("note not found")
	}
	if note.OwnerId == callerId {
		return note, nil
	}

	grant, err := s.shares.Find(ctx, id, callerId)
	if err != nil {
		return nil, err
	}
	if grant == nil {
		return nil, apperr.NotFound("note not found")
	}
	if grant.Permission != entity.PermissionEdit {
		return nil, apperr.PermissionDenied("read-only access")
	}
	return note, nil
}

func (s *noteService) Delete(ctx context.Context, ownerId bson.ObjectID, noteId string) error {
	id, err := parseRef(noteId, "note")
	if err != nil {
		return err
	}

	if err := s.cascade.DeleteNote(ctx, ownerId, id); err != nil {
		return err
	}

	if err := s.publisher.PublishNoteEvent(events.NoteDeleted, id.Hex(), ownerId.Hex()); err != nil {
		s.log.Warn("note", "failed to publish note event", map[string]interface{}{
			"error": err.Error(), "note_id": id.Hex(),
		})
	}
	return nil
}

func (s *noteService) List(ctx context.Context, ownerId bson.ObjectID, query *dto.ListNotesQuery) ([]*dto.NoteResponse, error) {
	filter := contract.NoteSearchFilter{
		OwnerId:    ownerId,
		TagIds:     parseRefSet(query.TagIds),
		PinnedOnly: query.PinnedOnly,
		Text:       query.Search,
		Skip:       query.Skip,
		Limit:      query.Limit,
	}

	if query.CollectionId != "" {
		collectionId, err := bson.ObjectIDFromHex(query.CollectionId)
		if err != nil {
			// Malformed collection scope matches nothing.
			return []*dto.NoteResponse{}, nil
		}
		memberships, err := s.memberships.FindAllByCollection(ctx, collectionId)
		if err != nil {
			return nil, err
		}
		if len(memberships) == 0 {
			return []*dto.NoteResponse{}, nil
		}
		ids := make([]bson.ObjectID, 0, len(memberships))
		for _, m := range memberships {
			ids = append(ids, m.NoteId)
		}
		filter.ScopeToIds = true
		filter.NoteIds = ids
	}

	notes, err := s.notes.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.NoteResponse, 0, len(notes))
	for _, note := range notes {
		result = append(result, toNoteResponse(note))
	}
	return result, nil
}

func (s *noteService) SharedWithMe(ctx context.Context, userId bson.ObjectID, skip, limit int64) ([]*dto.SharedNoteResponse, error) {
	grants, err := s.shares.FindAllByUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	if len(grants) == 0 {
		return []*dto.SharedNoteResponse{}, nil
	}

	permissions := make(map[bson.ObjectID]entity.SharePermission, len(grants))
	ids := make([]bson.ObjectID, 0, len(grants))
	for _, grant := range grants {
		permissions[grant.NoteId] = grant.Permission
		ids = append(ids, grant.NoteId)
	}

	notes, err := s.notes.FindByIds(ctx, ids, skip, limit)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.SharedNoteResponse, 0, len(notes))
	for _, note := range notes {
		result = append(result, &dto.SharedNoteResponse{
			NoteResponse: *toNoteResponse(note),
			Permission:   string(permissions[note.Id]),
		})
	}
	return result, nil
}

func (s *noteService) publishNoteEvent(eventType string, note *entity.Note) {
	if err := s.publisher.PublishNoteEvent(eventType, note.Id.Hex(), note.OwnerId.Hex()); err != nil {
		s.log.Warn("note", "failed to publish note event", map[string]interface{}{
			"error": err.Error(), "note_id": note.Id.Hex(),
		})
	}
}

func toNoteResponse(note *entity.Note) *dto.NoteResponse {
	return &dto.NoteResponse{
		Id:        note.Id.Hex(),
		OwnerId:   note.OwnerId.Hex(),
		Title:     note.Title,
		Content:   note.Content,
		Format:    string(note.Format),
		IsPinned:  note.IsPinned,
		Tags:      hexSet(note.Tags),
		Color:     note.Color,
		Metadata:  note.Metadata,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}
