package handler

import "github.com/ghxstship/backend/internal/interfaces/http/dto"

// The types below only describe the JSON envelope for swag. Handlers write
// through BaseHandler.Success, SuccessWithMeta and Error.

// APIResponse is the envelope of a single-resource success
type APIResponse[T any] struct {
	Success bool `json:"success" example:"true"`
	Data    T    `json:"data"`
}

// ListResponse is the envelope of a paginated list; Meta carries the totals
type ListResponse[T any] struct {
	Success bool      `json:"success" example:"true"`
	Data    []T       `json:"data"`
	Meta    *dto.Meta `json:"meta"`
}

// ErrorResponse is the envelope of every 4xx and 5xx answer
type ErrorResponse struct {
	Success bool           `json:"success" example:"false"`
	Error   *dto.ErrorInfo `json:"error"`
}
