package models

import "errors"

// Domain error taxonomy. Stores and services wrap these with context;
// controllers map them to HTTP status codes with errors.Is.
var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrInvalidTransition = errors.New("invalid status transition")
)
