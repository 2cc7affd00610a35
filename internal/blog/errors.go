package blog

import "errors"

// Domain errors shared by the service and repository layers. Handlers map
// them onto HTTP status codes and response categories.
var (
	ErrNotFound   = errors.New("blog post not found")
	ErrInvalidID  = errors.New("invalid blog post id")
	ErrValidation = errors.New("validation failed")
)

// Categories carried in the "error" field of failure responses. Every error
// the API returns uses one of these.
const (
	CategoryValidation = "validation_error"
	CategoryInvalidID  = "invalid_id"
	CategoryNotFound   = "not_found"
	CategoryServer     = "internal_error"
)
