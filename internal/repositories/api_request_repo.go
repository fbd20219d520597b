package repositories

import (
	"context"
	"fmt"

	"github.com/feedback-tracker/backend/internal/models"
)

type APIRequestRepo struct {
	db DBTX
}

func NewAPIRequestRepo(db DBTX) *APIRequestRepo {
	return &APIRequestRepo{db: db}
}

func (r *APIRequestRepo) Create(ctx context.Context, entry *models.APIRequestLog) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO api_requests (method, endpoint, request_body, response_body, status_code, response_time)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, entry.Method, entry.Endpoint, entry.RequestBody, entry.ResponseBody, entry.StatusCode, entry.ResponseTime,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert api request log: %w", err)
	}
	return nil
}

// Recent returns the newest entries first.
func (r *APIRequestRepo) Recent(ctx context.Context, limit int) ([]models.APIRequestLog, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.Query(ctx, `
		SELECT id, method, endpoint, request_body, response_body, status_code, response_time, created_at
		FROM api_requests ORDER BY created_at DESC, id DESC LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list api request logs: %w", err)
	}
	defer rows.Close()

	logs := make([]models.APIRequestLog, 0)
	for rows.Next() {
		var l models.APIRequestLog
		if err := rows.Scan(&l.ID, &l.Method, &l.Endpoint, &l.RequestBody, &l.ResponseBody,
			&l.StatusCode, &l.ResponseTime, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan api request log: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list api request logs: %w", err)
	}
	return logs, nil
}
