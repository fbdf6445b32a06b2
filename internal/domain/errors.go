package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error categories surfaced by registration and route queries. None of them is
// fatal; each aborts only the operation that produced it.
var (
	ErrInvalidFormat    = errors.New("invalid format")
	ErrEmptyInput       = fmt.Errorf("%w: input cannot be empty", ErrInvalidFormat)
	ErrInvalidCode      = errors.New("invalid location code")
	ErrSameEndpoint     = errors.New("origin and destination are the same")
	ErrDuplicateEdge    = errors.New("route already exists")
	ErrEndpointNotFound = errors.New("endpoint not found")
	ErrNoPathFound      = errors.New("no route found")
	ErrNoRoutes         = errors.New("no routes available")
)

// Field identifies which endpoint a validation rule applies to.
type Field string

const (
	FieldOrigin      Field = "origin"
	FieldDestination Field = "destination"
	FieldBoth        Field = "both"
)

// Violation is a single broken registration rule.
type Violation struct {
	Field Field
	Value string
	Err   error
}

func (v Violation) Error() string {
	switch {
	case errors.Is(v.Err, ErrSameEndpoint):
		return fmt.Sprintf("Origin and destination are the same ('%s'). Please try again with different values.", v.Value)
	case v.Field == FieldOrigin:
		return fmt.Sprintf("Origin '%s' is invalid. It must contain exactly 3 letters.", v.Value)
	case v.Field == FieldDestination:
		return fmt.Sprintf("Destination '%s' is invalid. It must contain exactly 3 letters.", v.Value)
	default:
		return v.Err.Error()
	}
}

func (v Violation) Unwrap() error {
	return v.Err
}

// ValidationError accumulates every rule an edge violated.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "no violations"
	}
	if len(e.Violations) == 1 {
		return e.Violations[0].Error()
	}
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Error())
	}
	return strings.Join(msgs, "\n")
}

func (e *ValidationError) Unwrap() []error {
	errs := make([]error, 0, len(e.Violations))
	for _, v := range e.Violations {
		errs = append(errs, v)
	}
	return errs
}

// Add records a violation.
func (e *ValidationError) Add(field Field, value string, err error) {
	e.Violations = append(e.Violations, Violation{Field: field, Value: value, Err: err})
}

// AsError returns nil when nothing was recorded.
func (e *ValidationError) AsError() error {
	if len(e.Violations) == 0 {
		return nil
	}
	return e
}

// MissingEndpointError reports which query endpoints are absent from the route set.
type MissingEndpointError struct {
	Origin             string
	Destination        string
	OriginMissing      bool
	DestinationMissing bool
}

func (e *MissingEndpointError) Error() string {
	switch {
	case e.OriginMissing && e.DestinationMissing:
		return fmt.Sprintf("Error: the origin '%s' and the destination '%s' do not exist in the available routes.", e.Origin, e.Destination)
	case e.OriginMissing:
		return fmt.Sprintf("Error: the origin '%s' does not exist in the available routes.", e.Origin)
	default:
		return fmt.Sprintf("Error: the destination '%s' does not exist in the available routes.", e.Destination)
	}
}

// Is matches ErrEndpointNotFound.
func (e *MissingEndpointError) Is(target error) bool {
	return target == ErrEndpointNotFound
}

// Category labels used by metrics, HTTP status mapping, and console output.
const (
	CategoryInvalidFormat    = "invalid_format"
	CategoryInvalidCode      = "invalid_code"
	CategorySameEndpoint     = "same_endpoint"
	CategoryDuplicate        = "duplicate"
	CategoryEndpointNotFound = "endpoint_not_found"
	CategoryNoPath           = "no_path"
	CategoryNoRoutes         = "no_routes"
	CategoryInternal         = "internal"
	CategoryOK               = "ok"
)

// Category maps an error to its stable category label. A validation error that
// carries both code and same-endpoint violations reports the code category.
func Category(err error) string {
	switch {
	case err == nil:
		return CategoryOK
	case errors.Is(err, ErrInvalidFormat):
		return CategoryInvalidFormat
	case errors.Is(err, ErrInvalidCode):
		return CategoryInvalidCode
	case errors.Is(err, ErrSameEndpoint):
		return CategorySameEndpoint
	case errors.Is(err, ErrDuplicateEdge):
		return CategoryDuplicate
	case errors.Is(err, ErrEndpointNotFound):
		return CategoryEndpointNotFound
	case errors.Is(err, ErrNoPathFound):
		return CategoryNoPath
	case errors.Is(err, ErrNoRoutes):
		return CategoryNoRoutes
	default:
		return CategoryInternal
	}
}
