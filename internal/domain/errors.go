package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrDuplicate           = errors.New("duplicate key")
	ErrSeatAlreadyTaken    = errors.New("seat is already taken")
	ErrRouteAlreadyExists  = errors.New("route with this source and destination already exists")
	ErrUnknownAirport      = errors.New("unknown airport")
	ErrInvalidFlightWindow = errors.New("departure must be before arrival")
	ErrAirplaneInUse       = errors.New("airplane has sold tickets and its layout cannot change")
	ErrInvalidReference    = errors.New("referenced object does not exist")
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrUnauthorized        = errors.New("unauthorized")
)

// TicketError ties an allocation failure to the position of the offending
// ticket in a multi-ticket order.
type TicketError struct {
	Index int
	Err   error
}

func (e *TicketError) Error() string {
	return fmt.Sprintf("ticket %d: %v", e.Index, e.Err)
}

func (e *TicketError) Unwrap() error { return e.Err }

// ValidationError carries field-scoped messages.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
