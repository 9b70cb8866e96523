package dto

import "time"

// APIResponse is the standard success envelope
type APIResponse struct {
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// SuccessResponse represents a bare message response
type SuccessResponse struct {
	Message string `json:"message"`
}
