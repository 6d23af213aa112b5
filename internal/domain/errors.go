package domain

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

// NoCapacityError is an expected, user-facing outcome of a seat
// reservation race, not a bug. Available carries the count left at the
// time the reservation was refused.
type NoCapacityError struct {
	TripID    int64
	Requested int
	Available int
}

func (e NoCapacityError) Error() string {
	if e.Available == 1 {
		return "only 1 seat left"
	}
	return fmt.Sprintf("only %d seats left", e.Available)
}

// TripNotBookableError signals that the trip's status precludes new
// bookings (departed, arrived or cancelled).
type TripNotBookableError struct {
	TripID int64
	Status string
}

func (e TripNotBookableError) Error() string {
	return fmt.Sprintf("trip is not open for booking (status %s)", e.Status)
}

// InvalidTransitionError indicates lifecycle misuse by a caller. It is
// logged loudly and surfaced as a generic failure.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid trip status transition: %s -> %s", e.From, e.To)
}

// AlreadyCancelledError guards cancellation idempotency.
type AlreadyCancelledError struct {
	BookingID int64
}

func (e AlreadyCancelledError) Error() string {
	return "booking is already cancelled"
}

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsNoCapacity(err error) bool {
	var target NoCapacityError
	return errors.As(err, &target)
}

func IsTripNotBookable(err error) bool {
	var target TripNotBookableError
	return errors.As(err, &target)
}

func IsInvalidTransition(err error) bool {
	var target InvalidTransitionError
	return errors.As(err, &target)
}

func IsAlreadyCancelled(err error) bool {
	var target AlreadyCancelledError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}
