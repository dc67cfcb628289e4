package contract

import (
	"context"

	"notesphere-be/internal/entity"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type UserRepository interface {
	// Insert fails with a Conflict kind on duplicate email or username.
	Insert(ctx context.Context, user *entity.User) error
	FindById(ctx context.Context, id bson.ObjectID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	UpdateFields(ctx context.Context, id bson.ObjectID, fields map[string]interface{}) error
}
