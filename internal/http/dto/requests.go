package dto

// FeedbackRequest is the body of create and update calls.
type FeedbackRequest struct {
	Title       string `json:"title" validate:"required,text,max=255"`
	Platform    string `json:"platform" validate:"required,text,max=100"`
	Module      string `json:"module" validate:"required,text,max=100"`
	Description string `json:"description" validate:"required,text"`
	Attachments string `json:"attachments" validate:"text,max=500"`
	Tags        string `json:"tags" validate:"text,max=300"`
}
