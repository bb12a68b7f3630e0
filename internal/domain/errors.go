package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrDuplicate          = errors.New("record already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// ValidationError rejects a request before anything is written.
type ValidationError struct {
	Reason string
	Fields []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Reason, strings.Join(e.Fields, ", "))
}

func missingFields(reason string, fields []string) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Reason: reason, Fields: fields}
}
