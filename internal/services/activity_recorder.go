package services

import (
	"context"
	"sync"
	"time"

	"github.com/feedback-tracker/backend/internal/events"
	"github.com/feedback-tracker/backend/internal/metrics"
	"github.com/feedback-tracker/backend/internal/models"
	"go.uber.org/zap"
)

const defaultPublishTimeout = 2 * time.Second

// ActivityRecorder appends audit rows. It never reports failure to its caller.
// Stored rows are announced to the publisher off the request goroutine.
type ActivityRecorder struct {
	store          ActivityStore
	publisher      events.Publisher
	metrics        *metrics.Metrics
	log            *zap.Logger
	publishTimeout time.Duration
	wg             sync.WaitGroup
}

func NewActivityRecorder(store ActivityStore, publisher events.Publisher, m *metrics.Metrics, log *zap.Logger) *ActivityRecorder {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &ActivityRecorder{
		store:          store,
		publisher:      publisher,
		metrics:        m,
		log:            log,
		publishTimeout: defaultPublishTimeout,
	}
}

func (r *ActivityRecorder) Record(ctx context.Context, action, tableName string, recordID int64, details string) {
	entry := &models.ActivityLog{
		Action:    action,
		TableName: tableName,
		RecordID:  recordID,
		Details:   details,
	}

	if err := r.store.Create(ctx, entry); err != nil {
		r.metrics.AuditWriteFailed()
		r.log.Error("failed to record activity",
			zap.String("action", action),
			zap.String("table", tableName),
			zap.Int64("record_id", recordID),
			zap.Error(err),
		)
		return
	}

	event := events.Event{
		Type: events.EventActivityRecorded,
		Payload: map[string]any{
			"id":         entry.ID,
			"action":     entry.Action,
			"table_name": entry.TableName,
			"record_id":  entry.RecordID,
			"details":    entry.Details,
			"created_at": entry.CreatedAt,
		},
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), r.publishTimeout)
		defer cancel()

		if err := r.publisher.Publish(ctx, events.StreamActivity, event); err != nil {
			r.log.Warn("failed to publish activity event", zap.Int64("activity_id", entry.ID), zap.Error(err))
		}
	}()
}

// Wait blocks until every publish started by Record has finished.
func (r *ActivityRecorder) Wait() {
	r.wg.Wait()
}
