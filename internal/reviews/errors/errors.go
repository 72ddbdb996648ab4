package errors

import "errors"

var (
	ErrNotFound = errors.New("review not found")

	ErrDuplicate = errors.New("booking has already been reviewed")

	ErrNotEligible = errors.New("booking is not eligible for review")
)
