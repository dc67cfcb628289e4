package service

import (
	"context"
	"time"

	"notesphere-be/internal/dto"
	"notesphere-be/internal/entity"
	"notesphere-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type IUserService interface {
	// GetById returns nil, nil when the user does not exist.
	GetById(ctx context.Context, id bson.ObjectID) (*entity.User, error)
	GetProfile(ctx context.Context, id bson.ObjectID) (*dto.UserProfileResponse, error)
}

type userService struct {
	users contract.UserRepository
	cache *cache.Cache
}

func NewUserService(users contract.UserRepository) IUserService {
	// User records are read on every authenticated request and on every
	// share target validation; a short TTL keeps deactivations visible.
	c := cache.New(5*time.Minute, 10*time.Minute)
	return &userService{
		users: users,
		cache: c,
	}
}

func (s *userService) GetById(ctx context.Context, id bson.ObjectID) (*entity.User, error) {
	if x, found := s.cache.Get(id.Hex()); found {
		return x.(*entity.User), nil
	}

	user, err := s.users.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if user != nil {
		s.cache.Set(id.Hex(), user, cache.DefaultExpiration)
	}
	return user, nil
}

func (s *userService) GetProfile(ctx context.Context, id bson.ObjectID) (*dto.UserProfileResponse, error) {
	user, err := s.GetById(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return &dto.UserProfileResponse{
		Id:        user.Id.Hex(),
		Email:     user.Email,
		Username:  user.Username,
		FullName:  user.FullName,
		Role:      string(user.Role),
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}, nil
}
