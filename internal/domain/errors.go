package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrProjectNotFound     = errors.New("project not found")
	ErrDuplicateSubmission = errors.New("duplicate submission")
)

// ConfigError reports required configuration missing when a component is built.
type ConfigError struct {
	Component string
	Missing   []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: missing required configuration: %s", e.Component, strings.Join(e.Missing, ", "))
}

// ValidationError carries one message per rejected field.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid submission: " + strings.Join(e.Fields, "; ")
}

// StoreError wraps a failed insert. Status is the HTTP status for REST backends, zero otherwise.
type StoreError struct {
	Backend string
	Status  int
	Err     error
}

func (e *StoreError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s insert failed (status %d): %v", e.Backend, e.Status, e.Err)
	}
	return fmt.Sprintf("%s insert failed: %v", e.Backend, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
