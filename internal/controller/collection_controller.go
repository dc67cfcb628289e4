package controller

import (
	"notesphere-be/internal/dto"
	"notesphere-be/internal/pkg/serverutils"
	"notesphere-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICollectionController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	AddNote(ctx *fiber.Ctx) error
	RemoveNote(ctx *fiber.Ctx) error
}

type collectionController struct {
	service   service.ICollectionService
	jwtSecret string
}

func NewCollectionController(service service.ICollectionService, jwtSecret string) ICollectionController {
	return &collectionController{service: service, jwtSecret: jwtSecret}
}

func (c *collectionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/collection/v1")
	h.Use(serverutils.NewJwtMiddleware(c.jwtSecret))
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
	h.Post(":id/notes", c.AddNote)
	h.Delete(":id/notes/:noteId", c.RemoveNote)
}

func (c *collectionController) Create(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateCollectionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create collection", res))
}

func (c *collectionController) GetAll(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	skip, limit := pagination(ctx)
	res, err := c.service.GetAll(ctx.Context(), userId, skip, limit)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get all collections", res))
}

func (c *collectionController) Show(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	skip, limit := pagination(ctx)
	res, err := c.service.ShowWithNotes(ctx.Context(), userId, ctx.Params("id"), skip, limit)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show collection", res))
}

func (c *collectionController) Update(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateCollectionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.Context(), userId, ctx.Params("id"), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update collection", res))
}

func (c *collectionController) Delete(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	if err := c.service.Delete(ctx.Context(), userId, ctx.Params("id")); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete collection", nil))
}

func (c *collectionController) AddNote(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.AddNoteToCollectionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.AddNote(ctx.Context(), userId, ctx.Params("id"), req.NoteId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success add note to collection", nil))
}

func (c *collectionController) RemoveNote(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	if err := c.service.RemoveNote(ctx.Context(), userId, ctx.Params("id"), ctx.Params("noteId")); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success remove note from collection", nil))
}
