package controller

import (
	"notesphere-be/internal/dto"
	"notesphere-be/internal/pkg/serverutils"
	"notesphere-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IShareController interface {
	RegisterRoutes(r fiber.Router)
	Share(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	UpdatePermission(ctx *fiber.Ctx) error
	Revoke(ctx *fiber.Ctx) error
}

type shareController struct {
	service   service.IShareService
	jwtSecret string
}

func NewShareController(service service.IShareService, jwtSecret string) IShareController {
	return &shareController{service: service, jwtSecret: jwtSecret}
}

func (c *shareController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/note/v1")
	h.Use(serverutils.NewJwtMiddleware(c.jwtSecret))
	h.Post(":id/share", c.Share)
	h.Get(":id/share", c.List)
	h.Put(":id/share/:shareId", c.UpdatePermission)
	h.Delete(":id/share/:userId", c.Revoke)
}

func (c *shareController) Share(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.ShareNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.ShareNote(ctx.Context(), userId, ctx.Params("id"), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success share note", res))
}

func (c *shareController) List(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.ListForNote(ctx.Context(), userId, ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get note shares", res))
}

func (c *shareController) UpdatePermission(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateSharePermissionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdatePermission(ctx.Context(), userId, ctx.Params("id"), ctx.Params("shareId"), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update share permission", res))
}

func (c *shareController) Revoke(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	if err := c.service.Revoke(ctx.Context(), userId, ctx.Params("id"), ctx.Params("userId")); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success revoke share", nil))
}
