package service

import "errors"

var (
	// ErrCheckInExists is returned when a check-in already exists for the
	// (user, date) pair; check-ins are immutable once created.
	ErrCheckInExists = errors.New("check-in already exists for this date")

	// ErrNotFound is returned when a requested record does not exist or
	// belongs to a different user.
	ErrNotFound = errors.New("not found")

	// ErrFutureDate is returned when a check-in is dated after today.
	ErrFutureDate = errors.New("check-in date cannot be in the future")
)
