package models

import "time"

// Activity actions
const (
	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

type ActivityLog struct {
	ID        int64     `json:"id"`
	Action    string    `json:"action"`
	TableName string    `json:"table_name"`
	RecordID  int64     `json:"record_id"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"created_at"`
}
