package contracts

import (
	"time"
)

const isoTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// Error labels used in ErrorResponse.Error
const (
	ErrorUnauthorized    = "Unauthorized"
	ErrorUpstream        = "ElevenLabs API error"
	ErrorRegisterFailure = "Failed to register call"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error   string      `json:"error"`
	Message string      `json:"message,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// NewErrorResponse returns an ErrorResponse with only the error label set
func NewErrorResponse(label string) *ErrorResponse {
	return &ErrorResponse{Error: label}
}

// SetErrorData fills the message from err
func (res *ErrorResponse) SetErrorData(err error) *ErrorResponse {
	if err != nil {
		res.Message = err.Error()
	}
	return res
}

// SetDetails attaches upstream data
func (res *ErrorResponse) SetDetails(details interface{}) *ErrorResponse {
	res.Details = details
	return res
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// NewHealthResponse returns an ok status stamped with t in UTC
func NewHealthResponse(t time.Time) *HealthResponse {
	return &HealthResponse{
		Status:    "ok",
		Timestamp: t.UTC().Format(isoTimeLayout),
	}
}
