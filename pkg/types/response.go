package types

import "github.com/shopcartlabs/shopcart-backend/pkg/listing"

// SuccessEnvelope is the shape of every 2xx response body.
type SuccessEnvelope struct {
	Success    bool                `json:"success"`
	Message    string              `json:"message,omitempty"`
	Data       any                 `json:"data,omitempty"`
	Pagination *listing.Pagination `json:"pagination,omitempty"`
	Filters    any                 `json:"filters,omitempty"`
}

// ErrorEnvelope is the shape of every error response body. Message is
// either a string or a list of per-field validation messages.
type ErrorEnvelope struct {
	Success bool `json:"success"`
	Message any  `json:"message"`
}
