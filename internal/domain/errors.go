package domain

import (
	"errors"
	"fmt"
)

// Named failures returned by the console core. They are wrapped in one of
// the typed errors below so handlers can pick a status from the type and a
// machine code from the sentinel.
var (
	ErrEmptyInput        = errors.New("empty input")
	ErrNoSelection       = errors.New("no seat selected")
	ErrPassengerNotFound = errors.New("passenger not found")
	ErrInvalidStation    = errors.New("invalid station")
	ErrInvalidSegment    = errors.New("invalid segment")
	ErrInvalidSeat       = errors.New("invalid seat")
	ErrInvalidPriority   = errors.New("invalid priority")
	ErrSeatUnavailable   = errors.New("seat unavailable")
	ErrBusNotFound       = errors.New("bus not found")
	ErrTicketNotFound    = errors.New("ticket not found")
	ErrNothingToUndo     = errors.New("nothing to undo")
	ErrNothingToRedo     = errors.New("nothing to redo")
)

var failureCodes = []struct {
	err  error
	code string
}{
	{ErrEmptyInput, "empty_input"},
	{ErrNoSelection, "no_selection"},
	{ErrPassengerNotFound, "passenger_not_found"},
	{ErrInvalidStation, "invalid_station"},
	{ErrInvalidSegment, "invalid_segment"},
	{ErrInvalidSeat, "invalid_seat"},
	{ErrInvalidPriority, "invalid_priority"},
	{ErrSeatUnavailable, "seat_unavailable"},
	{ErrBusNotFound, "bus_not_found"},
	{ErrTicketNotFound, "ticket_not_found"},
	{ErrNothingToUndo, "nothing_to_undo"},
	{ErrNothingToRedo, "nothing_to_redo"},
}

// Code returns the snake_case failure name for err, or "" when err does not
// wrap one of the named failures.
func Code(err error) string {
	for _, fc := range failureCodes {
		if errors.Is(err, fc.err) {
			return fc.code
		}
	}
	return ""
}

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

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}
