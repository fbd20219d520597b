package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/feedback-tracker/backend/internal/metrics"
	"github.com/feedback-tracker/backend/internal/models"
	"github.com/feedback-tracker/backend/internal/repositories"
	"go.uber.org/zap"
)

var ErrFeedbackNotFound = errors.New("feedback not found")

type FeedbackService struct {
	feedbacks FeedbackStore
	activity  *ActivityRecorder
	metrics   *metrics.Metrics
	log       *zap.Logger
}

func NewFeedbackService(
	feedbacks FeedbackStore,
	activity *ActivityRecorder,
	m *metrics.Metrics,
	log *zap.Logger,
) *FeedbackService {
	return &FeedbackService{
		feedbacks: feedbacks,
		activity:  activity,
		metrics:   m,
		log:       log,
	}
}

func (s *FeedbackService) List(ctx context.Context, f repositories.FeedbackFilter) ([]models.Feedback, error) {
	return s.feedbacks.List(ctx, f)
}

func (s *FeedbackService) GetByID(ctx context.Context, id int64) (*models.Feedback, error) {
	fb, err := s.feedbacks.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrFeedbackNotFound
	}
	if err != nil {
		return nil, err
	}
	return fb, nil
}

// Create inserts fb, filling its id and timestamps, then records the activity.
func (s *FeedbackService) Create(ctx context.Context, fb *models.Feedback) error {
	if err := s.feedbacks.Create(ctx, fb); err != nil {
		return err
	}
	s.metrics.Mutation(models.ActionCreate)

	s.activity.Record(ctx, models.ActionCreate, models.FeedbackTable, fb.ID,
		fmt.Sprintf("Created feedback: %s", fb.Title))
	return nil
}

// Update replaces every editable field of feedback id with the values of fb.
func (s *FeedbackService) Update(ctx context.Context, id int64, fb *models.Feedback) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	fb.ID = id
	if err := s.feedbacks.Update(ctx, fb); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrFeedbackNotFound
		}
		return err
	}
	s.metrics.Mutation(models.ActionUpdate)

	s.activity.Record(ctx, models.ActionUpdate, models.FeedbackTable, id,
		fmt.Sprintf("Updated feedback: %s", fb.Title))
	return nil
}

func (s *FeedbackService) Delete(ctx context.Context, id int64) error {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.feedbacks.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrFeedbackNotFound
		}
		return err
	}
	s.metrics.Mutation(models.ActionDelete)

	s.activity.Record(ctx, models.ActionDelete, models.FeedbackTable, id,
		fmt.Sprintf("Deleted feedback: %s", existing.Title))
	return nil
}
