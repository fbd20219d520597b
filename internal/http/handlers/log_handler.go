package handlers

import (
	"context"

	"github.com/feedback-tracker/backend/internal/http/dto"
	"github.com/feedback-tracker/backend/internal/middleware"
	"github.com/feedback-tracker/backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const recentLogsLimit = 100

type ActivityReader interface {
	Recent(ctx context.Context, limit int) ([]models.ActivityLog, error)
}

type APIRequestReader interface {
	Recent(ctx context.Context, limit int) ([]models.APIRequestLog, error)
}

type LogHandler struct {
	activities ActivityReader
	requests   APIRequestReader
	log        *zap.Logger
}

func NewLogHandler(activities ActivityReader, requests APIRequestReader, log *zap.Logger) *LogHandler {
	return &LogHandler{activities: activities, requests: requests, log: log}
}

// GetActivities
// @Summary Recent activity log
// @Description Latest 100 audit entries, newest first.
// @Tags logs
// @Produce json
// @Success 200 {object} dto.SuccessResponse{data=[]models.ActivityLog}
// @Failure 500 {object} dto.ErrorResponse
// @Router /logs/activities [get]
func (h *LogHandler) GetActivities(c *fiber.Ctx) error {
	entries, err := h.activities.Recent(c.UserContext(), recentLogsLimit)
	if err != nil {
		return h.internalError(c, "list activity logs", err)
	}
	return c.JSON(dto.SuccessResponse{Success: true, Data: entries})
}

// GetAPIRequests
// @Summary Recent API request log
// @Description Latest 100 traced requests, newest first.
// @Tags logs
// @Produce json
// @Success 200 {object} dto.SuccessResponse{data=[]models.APIRequestLog}
// @Failure 500 {object} dto.ErrorResponse
// @Router /logs/api-requests [get]
func (h *LogHandler) GetAPIRequests(c *fiber.Ctx) error {
	entries, err := h.requests.Recent(c.UserContext(), recentLogsLimit)
	if err != nil {
		return h.internalError(c, "list api request logs", err)
	}
	return c.JSON(dto.SuccessResponse{Success: true, Data: entries})
}

func (h *LogHandler) internalError(c *fiber.Ctx, op string, err error) error {
	h.log.Error(op+" failed", zap.String("request_id", middleware.GetRequestID(c)), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Success: false,
		Message: dto.MsgInternalError,
	})
}
