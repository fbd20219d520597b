package dto

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type ListResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
	Count   int  `json:"count"`
}

type ErrorResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

type HealthResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Fixed client-facing messages.
const (
	MsgFeedbackNotFound = "Feedback not found"
	MsgInternalError    = "Internal server error"
	MsgValidationError  = "Validation error"
	MsgRouteNotFound    = "Route not found"
	MsgUnexpectedError  = "Something went wrong!"
	MsgTooManyRequests  = "Too many requests"
)
