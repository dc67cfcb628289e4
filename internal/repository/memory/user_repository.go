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

type UserRepository struct {
	mu    sync.RWMutex
	users map[bson.ObjectID]*entity.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[bson.ObjectID]*entity.User)}
}

var _ contract.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) Insert(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email || u.Username == user.Username {
			return apperr.Conflict("user already exists")
		}
	}
	if user.Id.IsZero() {
		user.Id = bson.NewObjectID()
	}
	cp := *user
	r.users[user.Id] = &cp
	return nil
}

func (r *UserRepository) FindById(ctx context.Context, id bson.ObjectID) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) UpdateFields(ctx context.Context, id bson.ObjectID, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil
	}
	for key, value := range fields {
		switch key {
		case "full_name":
			u.FullName = value.(string)
		case "is_active":
			u.IsActive = value.(bool)
		case "hashed_password":
			u.HashedPassword = value.(string)
		}
	}
	u.UpdatedAt = time.Now().UTC()
	return nil
}
