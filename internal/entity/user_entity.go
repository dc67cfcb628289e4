package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type User struct {
	Id             bson.ObjectID `bson:"_id,omitempty"`
	Email          string        `bson:"email"`
	Username       string        `bson:"username"`
	FullName       string        `bson:"full_name,omitempty"`
	HashedPassword string        `bson:"hashed_password"`
	Role           UserRole      `bson:"role"`
	IsActive       bool          `bson:"is_active"`
	CreatedAt      time.Time     `bson:"created_at"`
	UpdatedAt      time.Time     `bson:"updated_at"`
}
