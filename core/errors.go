package core

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

// ValidationError reports input that was rejected before anything was written.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err != nil {
		return err.Err.Error()
	}
	if len(err.Fields) > 0 {
		msgs := make([]string, 0, len(err.Fields))
		for _, fld := range err.Fields {
			msgs = append(msgs, fld.Field+": "+fld.Error)
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}

// ConstraintError reports a write that would give two live rows the same values for a uniqueness tuple.
type ConstraintError struct {
	Entity     string
	Constraint string
	Fields     []string
}

func NewConstraintError(entity, constraint string, fields ...string) error {
	return &ConstraintError{Entity: entity, Constraint: constraint, Fields: fields}
}

func (err ConstraintError) Error() string {
	return fmt.Sprintf("a %s with this %s already exists", err.Entity, strings.Join(err.Fields, ", "))
}

// ReferenceError reports a foreign key pointing to a row that does not exist,
// or (InUse) a delete refused because other rows still reference the target.
type ReferenceError struct {
	Entity string // referenced entity
	Field  string
	ID     string
	InUse  bool
}

func NewReferenceError(entity, field, id string) error {
	return &ReferenceError{Entity: entity, Field: field, ID: id}
}

func NewInUseError(entity, id string) error {
	return &ReferenceError{Entity: entity, ID: id, InUse: true}
}

func (err ReferenceError) Error() string {
	if err.InUse {
		return fmt.Sprintf("%s %q is still referenced", err.Entity, err.ID)
	}
	return fmt.Sprintf("%s: %s %q does not exist", err.Field, err.Entity, err.ID)
}

// IsConstraintError reports whether any error in err's chain is a *ConstraintError.
func IsConstraintError(err error) bool {
	var cErr *ConstraintError
	return errors.As(err, &cErr)
}

// IsReferenceError reports whether any error in err's chain is a *ReferenceError.
func IsReferenceError(err error) bool {
	var rErr *ReferenceError
	return errors.As(err, &rErr)
}

// IsValidationError reports whether any error in err's chain is a *ValidationError.
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}
