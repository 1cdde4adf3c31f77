package models

import (
	"errors"
	"fmt"
)

// ErrorType identifies the category of error that occurred.
type ErrorType string

const (
	// Record preparation
	ErrRecordMalformed  ErrorType = "record_malformed"
	ErrRecordMissingKey ErrorType = "record_missing_key"
	ErrRecordInvalid    ErrorType = "record_invalid"
)

var (
	// ErrDuplicateKey is matched by every DuplicateKeyError.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrMissingKey is returned by preppers when a raw record lacks a required key.
	ErrMissingKey = errors.New("missing required key")
)

// DuplicateKeyError is returned when a name is registered twice in the same registry.
type DuplicateKeyError struct {
	Registry string
	Name     string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s: %q already registered", e.Registry, e.Name)
}

func (e *DuplicateKeyError) Unwrap() error {
	return ErrDuplicateKey
}
