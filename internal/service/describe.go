package service

import (
	"errors"

	"github.com/vanshika/routeplanner/internal/domain"
)

// Operation selects the wording of format errors in Describe.
type Operation int

const (
	OpRegister Operation = iota
	OpQuery
)

const (
	msgEmptyInput     = "Invalid format! Input cannot be empty."
	msgRegisterFormat = "Invalid format! Use the format Origin,Destination,Cost."
	msgQueryFormat    = "Invalid format! Use the format Origin-Destination."
	msgDuplicate      = "The route already exists! Duplicates cannot be added."
	msgNoRoutes       = "There are no routes available to query."
	msgNoPath         = "No route found."
)

// Describe renders err as the message shown to a user of op.
func Describe(op Operation, err error) string {
	if err == nil {
		return ""
	}

	var verr *domain.ValidationError
	var missing *domain.MissingEndpointError
	switch {
	case errors.Is(err, domain.ErrEmptyInput):
		return msgEmptyInput
	case errors.Is(err, domain.ErrInvalidFormat):
		if op == OpQuery {
			return msgQueryFormat
		}
		return msgRegisterFormat
	case errors.As(err, &verr):
		return verr.Error()
	case errors.Is(err, domain.ErrDuplicateEdge):
		return msgDuplicate
	case errors.As(err, &missing):
		return missing.Error()
	case errors.Is(err, domain.ErrNoRoutes):
		return msgNoRoutes
	case errors.Is(err, domain.ErrNoPathFound):
		return msgNoPath
	default:
		return "Unexpected error: " + err.Error()
	}
}
