package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/feedback-tracker/backend/internal/models"
	"github.com/jackc/pgx/v5"
)

const feedbackColumns = `id, title, platform, module, description, attachments, tags, created_at, updated_at`

type FeedbackRepo struct {
	db DBTX
}

func NewFeedbackRepo(db DBTX) *FeedbackRepo {
	return &FeedbackRepo{db: db}
}

// FeedbackFilter narrows List. Zero value lists everything.
type FeedbackFilter struct {
	Platform string
	Module   string
	Search   string // case-insensitive substring of title, description or tags
}

func (r *FeedbackRepo) List(ctx context.Context, f FeedbackFilter) ([]models.Feedback, error) {
	query := `SELECT ` + feedbackColumns + ` FROM feedbacks`
	args := []any{}
	argIdx := 1
	where := []string{}

	if f.Platform != "" {
		where = append(where, fmt.Sprintf("platform = $%d", argIdx))
		args = append(args, f.Platform)
		argIdx++
	}
	if f.Module != "" {
		where = append(where, fmt.Sprintf("module = $%d", argIdx))
		args = append(args, f.Module)
		argIdx++
	}
	if f.Search != "" {
		where = append(where, fmt.Sprintf("(title ILIKE $%[1]d OR description ILIKE $%[1]d OR tags ILIKE $%[1]d)", argIdx))
		args = append(args, "%"+likeEscaper.Replace(f.Search)+"%")
	}

	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list feedbacks: %w", err)
	}
	defer rows.Close()

	feedbacks := make([]models.Feedback, 0)
	for rows.Next() {
		var fb models.Feedback
		if err := scanFeedback(rows, &fb); err != nil {
			return nil, fmt.Errorf("scan feedback: %w", err)
		}
		feedbacks = append(feedbacks, fb)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list feedbacks: %w", err)
	}
	return feedbacks, nil
}

func (r *FeedbackRepo) GetByID(ctx context.Context, id int64) (*models.Feedback, error) {
	var fb models.Feedback
	err := scanFeedback(r.db.QueryRow(ctx, `SELECT `+feedbackColumns+` FROM feedbacks WHERE id = $1`, id), &fb)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get feedback %d: %w", id, err)
	}
	return &fb, nil
}

// Create inserts fb and fills in the generated id and timestamps.
func (r *FeedbackRepo) Create(ctx context.Context, fb *models.Feedback) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO feedbacks (title, platform, module, description, attachments, tags)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, fb.Title, fb.Platform, fb.Module, fb.Description, fb.Attachments, fb.Tags,
	).Scan(&fb.ID, &fb.CreatedAt, &fb.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

// Update replaces every editable field of fb.ID and touches updated_at.
func (r *FeedbackRepo) Update(ctx context.Context, fb *models.Feedback) error {
	err := r.db.QueryRow(ctx, `
		UPDATE feedbacks SET title = $1, platform = $2, module = $3, description = $4,
		       attachments = $5, tags = $6, updated_at = now()
		WHERE id = $7
		RETURNING created_at, updated_at
	`, fb.Title, fb.Platform, fb.Module, fb.Description, fb.Attachments, fb.Tags, fb.ID,
	).Scan(&fb.CreatedAt, &fb.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("update feedback %d: %w", fb.ID, err)
	}
	return nil
}

func (r *FeedbackRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM feedbacks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete feedback %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func scanFeedback(row pgx.Row, fb *models.Feedback) error {
	return row.Scan(&fb.ID, &fb.Title, &fb.Platform, &fb.Module, &fb.Description,
		&fb.Attachments, &fb.Tags, &fb.CreatedAt, &fb.UpdatedAt)
}
