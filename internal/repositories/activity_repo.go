package repositories

import (
	"context"
	"fmt"

	"github.com/feedback-tracker/backend/internal/models"
)

type ActivityRepo struct {
	db DBTX
}

func NewActivityRepo(db DBTX) *ActivityRepo {
	return &ActivityRepo{db: db}
}

func (r *ActivityRepo) Create(ctx context.Context, entry *models.ActivityLog) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO activity_logs (action, table_name, record_id, details)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, entry.Action, entry.TableName, entry.RecordID, entry.Details).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert activity log: %w", err)
	}
	return nil
}

// Recent returns the newest entries first.
func (r *ActivityRepo) Recent(ctx context.Context, limit int) ([]models.ActivityLog, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.Query(ctx, `
		SELECT id, action, table_name, record_id, details, created_at
		FROM activity_logs ORDER BY created_at DESC, id DESC LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list activity logs: %w", err)
	}
	defer rows.Close()

	logs := make([]models.ActivityLog, 0)
	for rows.Next() {
		var l models.ActivityLog
		if err := rows.Scan(&l.ID, &l.Action, &l.TableName, &l.RecordID, &l.Details, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity log: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list activity logs: %w", err)
	}
	return logs, nil
}
