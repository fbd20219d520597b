package services

import (
	"context"

	"github.com/feedback-tracker/backend/internal/models"
	"github.com/feedback-tracker/backend/internal/repositories"
)

// FeedbackStore is satisfied by *repositories.FeedbackRepo.
type FeedbackStore interface {
	List(ctx context.Context, f repositories.FeedbackFilter) ([]models.Feedback, error)
	GetByID(ctx context.Context, id int64) (*models.Feedback, error)
	Create(ctx context.Context, fb *models.Feedback) error
	Update(ctx context.Context, fb *models.Feedback) error
	Delete(ctx context.Context, id int64) error
}

// ActivityStore is satisfied by *repositories.ActivityRepo.
type ActivityStore interface {
	Create(ctx context.Context, entry *models.ActivityLog) error
}

// APIRequestStore is satisfied by *repositories.APIRequestRepo.
type APIRequestStore interface {
	Create(ctx context.Context, entry *models.APIRequestLog) error
}
