package models

import "errors"

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a unique record is inserted twice.
	ErrAlreadyExists = errors.New("already exists")
	// ErrValidation is returned when a request is missing required fields.
	ErrValidation = errors.New("validation error")
)
