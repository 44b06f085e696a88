package types

import "github.com/felipeortega/gymdesk-backend/pkg/pagination"

// SuccessEnvelope is the standard API response shape.
type SuccessEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// ListEnvelope is the response shape for paginated collections. The paging
// meta sits alongside the data so clients never dig for it.
type ListEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
	pagination.Meta
}

// APIError is the machine-readable error payload.
type APIError struct {
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope is the standard API error shape.
type ErrorEnvelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Error   APIError `json:"error"`
}
