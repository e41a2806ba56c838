package model

import "errors"

var (
	// ErrInvalidInput marks malformed or missing request fields.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned when a referenced lesson id does not resolve.
	ErrNotFound = errors.New("lesson not found")
	// ErrCapacityExceeded is returned when a lesson has no spaces left at booking time.
	ErrCapacityExceeded = errors.New("some lessons are fully booked")
	// ErrStorageUnavailable wraps any failure of the persistence layer, including deadline expiry.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
