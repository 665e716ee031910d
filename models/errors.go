package models

import "errors"

var (
	// ErrValidation means a required field was empty or malformed
	ErrValidation = errors.New("validation failed")
	// ErrNotFound means the referenced record does not exist
	ErrNotFound = errors.New("not found")
)
