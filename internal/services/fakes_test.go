package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/feedback-tracker/backend/internal/events"
	"github.com/feedback-tracker/backend/internal/metrics"
	"github.com/feedback-tracker/backend/internal/models"
	"github.com/feedback-tracker/backend/internal/repositories"
	"github.com/stretchr/testify/require"
)

var errStoreDown = errors.New("store down")

type fakeFeedbackStore struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]models.Feedback

	// vanishOnUpdate makes Update behave as if the row was deleted after the existence check.
	vanishOnUpdate bool
	failCreate     bool
}

func newFakeFeedbackStore() *fakeFeedbackStore {
	return &fakeFeedbackStore{rows: map[int64]models.Feedback{}}
}

func (s *fakeFeedbackStore) List(_ context.Context, _ repositories.FeedbackFilter) ([]models.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Feedback, 0, len(s.rows))
	for _, fb := range s.rows {
		out = append(out, fb)
	}
	return out, nil
}

func (s *fakeFeedbackStore) GetByID(_ context.Context, id int64) (*models.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fb, ok := s.rows[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &fb, nil
}

func (s *fakeFeedbackStore) Create(_ context.Context, fb *models.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failCreate {
		return errStoreDown
	}
	s.nextID++
	fb.ID = s.nextID
	fb.CreatedAt = time.Now()
	fb.UpdatedAt = fb.CreatedAt
	s.rows[fb.ID] = *fb
	return nil
}

func (s *fakeFeedbackStore) Update(_ context.Context, fb *models.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.rows[fb.ID]
	if !ok || s.vanishOnUpdate {
		return repositories.ErrNotFound
	}
	fb.CreatedAt = existing.CreatedAt
	fb.UpdatedAt = time.Now()
	s.rows[fb.ID] = *fb
	return nil
}

func (s *fakeFeedbackStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

type fakeActivityStore struct {
	mu      sync.Mutex
	entries []models.ActivityLog
	fail    bool
}

func (s *fakeActivityStore) Create(_ context.Context, entry *models.ActivityLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errStoreDown
	}
	entry.ID = int64(len(s.entries) + 1)
	entry.CreatedAt = time.Now()
	s.entries = append(s.entries, *entry)
	return nil
}

func (s *fakeActivityStore) all() []models.ActivityLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ActivityLog(nil), s.entries...)
}

type fakeAPIRequestStore struct {
	mu      sync.Mutex
	entries []models.APIRequestLog
	fail    bool
}

func (s *fakeAPIRequestStore) Create(_ context.Context, entry *models.APIRequestLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errStoreDown
	}
	entry.ID = int64(len(s.entries) + 1)
	s.entries = append(s.entries, *entry)
	return nil
}

func (s *fakeAPIRequestStore) all() []models.APIRequestLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.APIRequestLog(nil), s.entries...)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	fail   bool
}

func (p *recordingPublisher) Publish(_ context.Context, _ string, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("publish failed")
	}
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) all() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.Event(nil), p.events...)
}

// blockingPublisher holds every Publish until release is closed or the context ends.
type blockingPublisher struct {
	release chan struct{}
	mu      sync.Mutex
	last    error
}

func (p *blockingPublisher) Publish(ctx context.Context, _ string, _ events.Event) error {
	var err error
	select {
	case <-p.release:
	case <-ctx.Done():
		err = ctx.Err()
	}
	p.mu.Lock()
	p.last = err
	p.mu.Unlock()
	return err
}

func (p *blockingPublisher) err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

func counterValue(t *testing.T, m *metrics.Metrics, name string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		var total float64
		for _, metric := range mf.GetMetric() {
			total += metric.GetCounter().GetValue()
		}
		return total
	}
	return 0
}
