package store

import (
	"errors"
)

// Request-level failures surfaced to the HTTP layer. Messages are part of
// the API contract and are returned to clients verbatim.
var (
	ErrMissingFields       = errors.New("Missing required fields")
	ErrInvalidRestroomType = errors.New("Invalid restroom type")
	ErrNameRequired        = errors.New("Name is required")
	ErrCodeRequired        = errors.New("Code is required")
	ErrInvalidVoteType     = errors.New(`Vote type must be "like" or "dislike"`)
	ErrDuplicateCode       = errors.New("This code already exists for this restroom")
	ErrRestroomNotFound    = errors.New("Restroom not found")
	ErrAccessCodeNotFound  = errors.New("Access code not found")
)

// IsValidation reports whether err is a bad-request failure (400).
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingFields) ||
		errors.Is(err, ErrInvalidRestroomType) ||
		errors.Is(err, ErrNameRequired) ||
		errors.Is(err, ErrCodeRequired) ||
		errors.Is(err, ErrInvalidVoteType)
}

// IsConflict reports whether err is a uniqueness violation (400).
func IsConflict(err error) bool {
	return errors.Is(err, ErrDuplicateCode)
}

// IsNotFound reports whether err means the referenced record is absent (404).
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRestroomNotFound) || errors.Is(err, ErrAccessCodeNotFound)
}
