package controller

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Query limits enforced before anything reaches the services.
const (
	defaultPageLimit = 50
	maxPageLimit     = 100
)

func currentUserId(ctx *fiber.Ctx) (bson.ObjectID, error) {
	raw, _ := ctx.Locals("user_id").(string)
	id, err := bson.ObjectIDFromHex(raw)
	if err != nil {
		return bson.ObjectID{}, fiber.NewError(fiber.StatusUnauthorized, "invalid token subject")
	}
	return id, nil
}

func pagination(ctx *fiber.Ctx) (skip, limit int64) {
	skip = int64(ctx.QueryInt("skip", 0))
	if skip < 0 {
		skip = 0
	}
	limit = int64(ctx.QueryInt("limit", defaultPageLimit))
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return skip, limit
}
