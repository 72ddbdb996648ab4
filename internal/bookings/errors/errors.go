package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	ErrDateConflict = errors.New("stay overlaps a confirmed booking")

	ErrInvalidTransition = errors.New("booking status does not allow this change")

	ErrPropertyNotFound = errors.New("property not found or inactive")

	ErrLocked = errors.New("property is being booked by another request")
)
