package services

import (
	"context"
	"sync"
	"time"

	"github.com/feedback-tracker/backend/internal/metrics"
	"github.com/feedback-tracker/backend/internal/models"
	"go.uber.org/zap"
)

// TraceRecorder persists API request log rows off the request goroutine.
// Write failures are logged and counted, never retried.
type TraceRecorder struct {
	store   APIRequestStore
	metrics *metrics.Metrics
	log     *zap.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewTraceRecorder(store APIRequestStore, m *metrics.Metrics, timeout time.Duration, log *zap.Logger) *TraceRecorder {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &TraceRecorder{store: store, metrics: m, log: log, timeout: timeout}
}

// Record takes ownership of entry and returns immediately.
func (r *TraceRecorder) Record(entry models.APIRequestLog) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		if err := r.store.Create(ctx, &entry); err != nil {
			r.metrics.TraceWriteFailed()
			r.log.Error("failed to record api request",
				zap.String("method", entry.Method),
				zap.String("endpoint", entry.Endpoint),
				zap.Int("status", entry.StatusCode),
				zap.Error(err),
			)
		}
	}()
}

// Wait blocks until every write started by Record has finished.
func (r *TraceRecorder) Wait() {
	r.wg.Wait()
}
