package handlers

import (
	"time"

	"github.com/feedback-tracker/backend/internal/http/dto"
	"github.com/feedback-tracker/backend/internal/models"
	"github.com/gofiber/fiber/v2"
)

const healthMessage = "Feedback Management API is running"

// ISO-8601 with milliseconds, always UTC
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

type MetaHandler struct {
	now func() time.Time
}

func NewMetaHandler() *MetaHandler {
	return &MetaHandler{now: time.Now}
}

// Health
// @Summary Liveness probe
// @Tags meta
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *MetaHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{
		Success:   true,
		Message:   healthMessage,
		Timestamp: h.now().UTC().Format(timestampLayout),
	})
}

// GetPlatforms
// @Summary Platform options for the feedback form
// @Tags meta
// @Produce json
// @Success 200 {object} dto.SuccessResponse{data=[]string}
// @Router /meta/platforms [get]
func (h *MetaHandler) GetPlatforms(c *fiber.Ctx) error {
	return c.JSON(dto.SuccessResponse{Success: true, Data: models.Platforms})
}

// GetModules
// @Summary Module options for the feedback form
// @Tags meta
// @Produce json
// @Success 200 {object} dto.SuccessResponse{data=[]string}
// @Router /meta/modules [get]
func (h *MetaHandler) GetModules(c *fiber.Ctx) error {
	return c.JSON(dto.SuccessResponse{Success: true, Data: models.Modules})
}

// RouteNotFound is the fallback for every path no route matched.
func RouteNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
		Success: false,
		Message: dto.MsgRouteNotFound,
	})
}
