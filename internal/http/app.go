package http

import (
	"errors"

	"github.com/feedback-tracker/backend/internal/http/dto"
	"github.com/feedback-tracker/backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func NewApp(log *zap.Logger) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      "feedback-tracker",
		ErrorHandler: ErrorHandler(log),
	})
}

// ErrorHandler renders errors that escaped the handlers. Client errors raised by
// fiber keep their status; everything else becomes the generic 500.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
			msg := fe.Message
			if fe.Code == fiber.StatusNotFound {
				msg = dto.MsgRouteNotFound
			}
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Success: false, Message: msg})
		}

		log.Error("unhandled error",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Success: false,
			Message: dto.MsgUnexpectedError,
		})
	}
}
