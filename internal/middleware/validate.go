package middleware

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/feedback-tracker/backend/internal/http/dto"
	"github.com/feedback-tracker/backend/internal/validation"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

const CtxFeedbackRequest = "feedback_request"

const msgInvalidBody = "request body must be valid JSON"

// FeedbackValidation parses and validates the feedback body before the handler runs.
// An empty body is validated as an empty object. Keys outside the feedback
// fields are rejected after the field rules.
func FeedbackValidation(v *validation.Validator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req dto.FeedbackRequest
		var keys []string
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return validationFailed(c, validation.Errors{msgInvalidBody})
			}
			var err error
			if keys, err = bodyKeys(c); err != nil {
				return validationFailed(c, validation.Errors{msgInvalidBody})
			}
		}

		var verrs validation.Errors
		if err := v.Feedback(&req); err != nil {
			if !errors.As(err, &verrs) {
				return err
			}
		}
		verrs = append(verrs, v.UnknownFields(keys)...)
		if len(verrs) > 0 {
			return validationFailed(c, verrs)
		}

		c.Locals(CtxFeedbackRequest, &req)
		return c.Next()
	}
}

// GetFeedbackRequest returns the body accepted by FeedbackValidation.
func GetFeedbackRequest(c *fiber.Ctx) *dto.FeedbackRequest {
	req, _ := c.Locals(CtxFeedbackRequest).(*dto.FeedbackRequest)
	return req
}

// bodyKeys lists the top-level keys of a JSON object or form body.
func bodyKeys(c *fiber.Ctx) ([]string, error) {
	ctype := utils.ToLower(utils.UnsafeString(c.Request().Header.ContentType()))
	switch {
	case strings.HasPrefix(ctype, fiber.MIMEApplicationForm):
		var keys []string
		c.Request().PostArgs().VisitAll(func(k, _ []byte) {
			keys = append(keys, string(k))
		})
		return keys, nil
	case strings.HasPrefix(ctype, fiber.MIMEMultipartForm):
		form, err := c.MultipartForm()
		if err != nil {
			return nil, err
		}
		keys := make([]string, 0, len(form.Value)+len(form.File))
		for k := range form.Value {
			keys = append(keys, k)
		}
		for k := range form.File {
			keys = append(keys, k)
		}
		return keys, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &obj); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	return keys, nil
}

func validationFailed(c *fiber.Ctx, errs validation.Errors) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Success: false,
		Message: dto.MsgValidationError,
		Errors:  errs,
	})
}
