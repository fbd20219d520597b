package models

import "time"

type Feedback struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Platform    string    `json:"platform"`
	Module      string    `json:"module"`
	Description string    `json:"description"`
	Attachments string    `json:"attachments"` // comma-separated file names, stored verbatim
	Tags        string    `json:"tags"`        // comma-separated, stored verbatim
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

const FeedbackTable = "feedbacks"
