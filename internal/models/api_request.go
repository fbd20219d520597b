package models

import "time"

type APIRequestLog struct {
	ID           int64     `json:"id"`
	Method       string    `json:"method"`
	Endpoint     string    `json:"endpoint"`
	RequestBody  string    `json:"request_body"`
	ResponseBody string    `json:"response_body"`
	StatusCode   int       `json:"status_code"`
	ResponseTime int64     `json:"response_time"` // milliseconds
	CreatedAt    time.Time `json:"created_at"`
}
