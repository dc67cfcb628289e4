package service

import (
	"context"
	"time"

	"notesphere-be/internal/dto"
	"notesphere-be/internal/entity"
	"notesphere-be/internal/pkg/apperr"
	"notesphere-be/internal/pkg/logger"
	"notesphere-be/internal/repository/contract"
	"notesphere-be/pkg/events"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type IShareService interface {
	// ShareNote grants access per target, reporting partial success. It
	// never aborts the batch because some targets were rejected.
	ShareNote(ctx context.Context, callerId bson.ObjectID, noteId string, req *dto.ShareNoteRequest) (*dto.ShareNoteResponse, error)
	UpdatePermission(ctx context.Context, callerId bson.ObjectID, noteId, shareId string, req *dto.UpdateSharePermissionRequest) (*dto.ShareGrantResponse, error)
	Revoke(ctx context.Context, callerId bson.ObjectID, noteId, targetUserId string) error
	ListForNote(ctx context.Context, callerId bson.ObjectID, noteId string) ([]*dto.ShareGrantResponse, error)
}

type shareService struct {
	shares    contract.ShareRepository
	notes     contract.NoteRepository
	users     IUserService
	publisher *events.Publisher
	log       logger.ILogger
}

func NewShareService(
	shares contract.ShareRepository,
	notes contract.NoteRepository,
	users IUserService,
	publisher *events.Publisher,
	log logger.ILogger,
) IShareService {
	return &shareService{
		shares:    shares,
		notes:     notes,
		users:     users,
		publisher: publisher,
		log:       log,
	}
}

// ownedNote resolves the note and checks the caller owns it. A missing note
// reads as not found; an existing note owned by someone else as denied.
func (s *shareService) ownedNote(ctx context.Context, callerId, noteId bson.ObjectID) (*entity.Note, error) {
	note, err := s.notes.FindById(ctx, noteId)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperr.NotFound("note not found")
	}
	if note.OwnerId != callerId {
		return nil, apperr.PermissionDenied("only the owner can manage sharing")
	}
	return note, nil
}

func (s *shareService) ShareNote(ctx context.Context, callerId bson.ObjectID, noteId string, req *dto.ShareNoteRequest) (*dto.ShareNoteResponse, error) {
	nid, err := parseRef(noteId, "note")
	if err != nil {
		return nil, err
	}
	note, err := s.ownedNote(ctx, callerId, nid)
	if err != nil {
		return nil, err
	}

	permission := entity.SharePermission(req.Permission)
	if permission == "" {
		permission = entity.PermissionRead
	}

	res := &dto.ShareNoteResponse{
		Granted:  make([]*dto.ShareGrantResponse, 0, len(req.UserIds)),
		Rejected: make([]*dto.RejectedShare, 0),
	}

	for _, target := range req.UserIds {
		targetId, err := bson.ObjectIDFromHex(target)
		if err != nil {
			res.Rejected = append(res.Rejected, &dto.RejectedShare{UserId: target, Reason: "invalid user id"})
			continue
		}
		if targetId == note.OwnerId {
			res.Rejected = append(res.Rejected, &dto.RejectedShare{UserId: target, Reason: "cannot share a note with its owner"})
			continue
		}
		user, err := s.users.GetById(ctx, targetId)
		if err != nil {
			return nil, err
		}
		if user == nil {
			res.Rejected = append(res.Rejected, &dto.RejectedShare{UserId: target, Reason: "user not found"})
			continue
		}

		grant, err := s.upsertGrant(ctx, nid, targetId, permission)
		if err != nil {
			s.log.Warn("share", "grant failed for target", map[string]interface{}{
				"error": err.Error(), "note_id": noteId, "user_id": target,
			})
			res.Rejected = append(res.Rejected, &dto.RejectedShare{UserId: target, Reason: "grant failed"})
			continue
		}
		res.Granted = append(res.Granted, toShareGrantResponse(grant))
	}

	if len(res.Granted) > 0 {
		if err := s.publisher.PublishNoteEvent(events.NoteShared, nid.Hex(), note.OwnerId.Hex()); err != nil {
			s.log.Warn("share", "failed to publish share event", map[string]interface{}{
				"error": err.Error(), "note_id": noteId,
			})
		}
	}
	return res, nil
}

// upsertGrant updates the permission when a grant for (note, user) already
// exists, instead of reporting a duplicate.
func (s *shareService) upsertGrant(ctx context.Context, noteId, userId bson.ObjectID, permission entity.SharePermission) (*entity.ShareGrant, error) {
	existing, err := s.shares.Find(ctx, noteId, userId)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if err := s.shares.UpdatePermission(ctx, existing.Id, permission); err != nil {
			return nil, err
		}
		return s.shares.Find(ctx, noteId, userId)
	}

	now := time.Now().UTC()
	grant := entity.ShareGrant{
		NoteId:     noteId,
		UserId:     userId,
		Permission: permission,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.shares.Insert(ctx, &grant); err != nil {
		if apperr.IsKind(err, apperr.KindConflict) {
			// A concurrent share won the insert; apply this permission to it.
			racing, findErr := s.shares.Find(ctx, noteId, userId)
			if findErr != nil || racing == nil {
				return nil, err
			}
			if updErr := s.shares.UpdatePermission(ctx, racing.Id, permission); updErr != nil {
				return nil, updErr
			}
			return s.shares.Find(ctx, noteId, userId)
		}
		return nil, err
	}
	return &grant, nil
}

func (s *shareService) UpdatePermission(ctx context.Context, callerId bson.ObjectID, noteId, shareId string, req *dto.UpdateSharePermissionRequest) (*dto.ShareGrantResponse, error) {
	nid, err := parseRef(noteId, "note")
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedNote(ctx, callerId, nid); err != nil {
		return nil, err
	}

	sid, err := parseRef(shareId, "share")
	if err != nil {
		return nil, err
	}
	grant, err := s.shares.FindById(ctx, sid)
	if err != nil {
		return nil, err
	}
	if grant == nil || grant.NoteId != nid {
		return nil, apperr.NotFound("share grant not found")
	}

	if err := s.shares.UpdatePermission(ctx, sid, entity.SharePermission(req.Permission)); err != nil {
		return nil, err
	}
	updated, err := s.shares.FindById(ctx, sid)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperr.NotFound("share grant not found")
	}
	return toShareGrantResponse(updated), nil
}

func (s *shareService) Revoke(ctx context.Context, callerId bson.ObjectID, noteId, targetUserId string) error {
	nid, err := parseRef(noteId, "note")
	if err != nil {
		return err
	}
	if _, err := s.ownedNote(ctx, callerId, nid); err != nil {
		return err
	}

	uid, err := parseRef(targetUserId, "user")
	if err != nil {
		return err
	}
	deleted, err := s.shares.Delete(ctx, nid, uid)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return apperr.NotFound("share grant not found")
	}
	return nil
}

func (s *shareService) ListForNote(ctx context.Context, callerId bson.ObjectID, noteId string) ([]*dto.ShareGrantResponse, error) {
	nid, err := parseRef(noteId, "note")
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedNote(ctx, callerId, nid); err != nil {
		return nil, err
	}

	grants, err := s.shares.FindAllByNote(ctx, nid)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.ShareGrantResponse, 0, len(grants))
	for _, grant := range grants {
		result = append(result, toShareGrantResponse(grant))
	}
	return result, nil
}

func toShareGrantResponse(grant *entity.ShareGrant) *dto.ShareGrantResponse {
	return &dto.ShareGrantResponse{
		Id:         grant.Id.Hex(),
		NoteId:     grant.NoteId.Hex(),
		UserId:     grant.UserId.Hex(),
		Permission: string(grant.Permission),
		CreatedAt:  grant.CreatedAt,
		UpdatedAt:  grant.UpdatedAt,
	}
}
