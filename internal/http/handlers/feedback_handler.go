package handlers

import (
	"errors"
	"strconv"

	"github.com/feedback-tracker/backend/internal/http/dto"
	"github.com/feedback-tracker/backend/internal/middleware"
	"github.com/feedback-tracker/backend/internal/models"
	"github.com/feedback-tracker/backend/internal/repositories"
	"github.com/feedback-tracker/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type FeedbackHandler struct {
	feedbackService *services.FeedbackService
	log             *zap.Logger
}

func NewFeedbackHandler(feedbackService *services.FeedbackService, log *zap.Logger) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService, log: log}
}

// ListFeedbacks
// @Summary List feedback
// @Description All feedback rows, newest first. No pagination.
// @Tags feedbacks
// @Produce json
// @Param platform query string false "Exact platform"
// @Param module query string false "Exact module"
// @Param q query string false "Case-insensitive search in title, description and tags"
// @Success 200 {object} dto.ListResponse{data=[]models.Feedback}
// @Failure 500 {object} dto.ErrorResponse
// @Router /feedbacks [get]
func (h *FeedbackHandler) ListFeedbacks(c *fiber.Ctx) error {
	filter := repositories.FeedbackFilter{
		Platform: c.Query("platform"),
		Module:   c.Query("module"),
		Search:   c.Query("q"),
	}

	list, err := h.feedbackService.List(c.UserContext(), filter)
	if err != nil {
		return h.internalError(c, "list feedbacks", err)
	}

	return c.JSON(dto.ListResponse{Success: true, Data: list, Count: len(list)})
}

// GetFeedback
// @Summary Get feedback
// @Tags feedbacks
// @Produce json
// @Param id path int true "Feedback id"
// @Success 200 {object} dto.SuccessResponse{data=models.Feedback}
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /feedbacks/{id} [get]
func (h *FeedbackHandler) GetFeedback(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}

	fb, err := h.feedbackService.GetByID(c.UserContext(), id)
	if errors.Is(err, services.ErrFeedbackNotFound) {
		return notFound(c)
	}
	if err != nil {
		return h.internalError(c, "get feedback", err, zap.Int64("feedback_id", id))
	}

	return c.JSON(dto.SuccessResponse{Success: true, Data: fb})
}

// CreateFeedback
// @Summary Create feedback
// @Tags feedbacks
// @Accept json
// @Produce json
// @Param body body dto.FeedbackRequest true "Feedback"
// @Success 201 {object} dto.SuccessResponse{data=models.Feedback}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /feedbacks [post]
func (h *FeedbackHandler) CreateFeedback(c *fiber.Ctx) error {
	fb := feedbackFromRequest(middleware.GetFeedbackRequest(c))

	if err := h.feedbackService.Create(c.UserContext(), fb); err != nil {
		return h.internalError(c, "create feedback", err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{
		Success: true,
		Message: "Feedback created successfully",
		Data:    fb,
	})
}

// UpdateFeedback replaces every editable field.
// @Summary Update feedback
// @Tags feedbacks
// @Accept json
// @Produce json
// @Param id path int true "Feedback id"
// @Param body body dto.FeedbackRequest true "Feedback"
// @Success 200 {object} dto.SuccessResponse{data=models.Feedback}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /feedbacks/{id} [put]
func (h *FeedbackHandler) UpdateFeedback(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}

	fb := feedbackFromRequest(middleware.GetFeedbackRequest(c))
	err := h.feedbackService.Update(c.UserContext(), id, fb)
	if errors.Is(err, services.ErrFeedbackNotFound) {
		return notFound(c)
	}
	if err != nil {
		return h.internalError(c, "update feedback", err, zap.Int64("feedback_id", id))
	}

	return c.JSON(dto.SuccessResponse{
		Success: true,
		Message: "Feedback updated successfully",
		Data:    fb,
	})
}

// DeleteFeedback
// @Summary Delete feedback
// @Tags feedbacks
// @Produce json
// @Param id path int true "Feedback id"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /feedbacks/{id} [delete]
func (h *FeedbackHandler) DeleteFeedback(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}

	err := h.feedbackService.Delete(c.UserContext(), id)
	if errors.Is(err, services.ErrFeedbackNotFound) {
		return notFound(c)
	}
	if err != nil {
		return h.internalError(c, "delete feedback", err, zap.Int64("feedback_id", id))
	}

	return c.JSON(dto.SuccessResponse{Success: true, Message: "Feedback deleted successfully"})
}

func (h *FeedbackHandler) internalError(c *fiber.Ctx, op string, err error, fields ...zap.Field) error {
	fields = append(fields, zap.String("request_id", middleware.GetRequestID(c)), zap.Error(err))
	h.log.Error(op+" failed", fields...)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Success: false,
		Message: dto.MsgInternalError,
	})
}

// parseID accepts positive integers only. Anything else can never match a row.
func parseID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
		Success: false,
		Message: dto.MsgFeedbackNotFound,
	})
}

func feedbackFromRequest(req *dto.FeedbackRequest) *models.Feedback {
	return &models.Feedback{
		Title:       req.Title,
		Platform:    req.Platform,
		Module:      req.Module,
		Description: req.Description,
		Attachments: req.Attachments,
		Tags:        req.Tags,
	}
}
