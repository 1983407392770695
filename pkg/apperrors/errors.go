package apperrors

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnknownKind  = errors.New("unknown record kind")
	ErrNoToken      = errors.New("no access token configured")
)
