package models

import "errors"

// Domain specific errors for authentication, authorization and backend calls.
var (
	ErrNotFound        = errors.New("requested item not found")
	ErrConflict        = errors.New("item already exists or conflict")
	ErrUnauthenticated = errors.New("authentication required or invalid credentials")
	ErrForbidden       = errors.New("action forbidden")
	ErrBadRequest      = errors.New("bad request")
	ErrValidation      = errors.New("validation failed")
	ErrTransport       = errors.New("backend unreachable")
	ErrNoSession       = errors.New("not logged in")
)
