package serverutils

import (
	"notesphere-be/internal/pkg/apperr"
	"notesphere-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps service failures onto HTTP statuses and the
// standard response envelope. Unknown errors are logged and masked as 500.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status := fiber.StatusInternalServerError
		message := "internal server error"

		switch apperr.KindOf(err) {
		case apperr.KindInvalidReference:
			status = fiber.StatusUnprocessableEntity
			message = err.Error()
		case apperr.KindNotFound:
			status = fiber.StatusNotFound
			message = err.Error()
		case apperr.KindConflict:
			status = fiber.StatusConflict
			message = err.Error()
		case apperr.KindPermissionDenied:
			status = fiber.StatusForbidden
			message = err.Error()
		case apperr.KindValidation:
			status = fiber.StatusBadRequest
			message = err.Error()
		default:
			if fiberErr, ok := err.(*fiber.Error); ok {
				status = fiberErr.Code
				message = fiberErr.Message
			} else {
				log.Error("http", "unhandled error", map[string]interface{}{
					"error": err.Error(),
					"path":  ctx.Path(),
				})
			}
		}

		return ctx.Status(status).JSON(FailureResponse(message))
	}
}
