package rating

import "errors"

var (
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("worker not found")
	ErrRatingRequired   = errors.New("rating is required")
	ErrRatingNotNumber  = errors.New("rating must be a number")
	ErrRatingOutOfRange = errors.New("rating out of range")
)
