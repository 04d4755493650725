package services

import (
	"errors"

	goa "goa.design/goa/v3/pkg"
)

// Error names understood by the HTTP transport.
const (
	ErrNameBadRequest   = "bad_request"
	ErrNameUnauthorized = "unauthorized"
)

// BadRequest creates a bad request service error
func BadRequest(message string) *goa.ServiceError {
	return goa.NewServiceError(errors.New(message), ErrNameBadRequest, false, false, false)
}

// Unauthorized creates an unauthorized service error
func Unauthorized(message string) *goa.ServiceError {
	return goa.NewServiceError(errors.New(message), ErrNameUnauthorized, false, false, false)
}
