package domain

import (
	"errors"
	"fmt"
)

// Codes carried by DomainError.
const (
	CodeDatabaseUnavailable = "database_unavailable"
	CodeSchemaMissing       = "schema_missing"
)

// DomainError is a coded failure whose Msg is safe to show to clients.
type DomainError struct {
	Code string
	Msg  string
	Err  error
}

func (e DomainError) Error() string {
	switch {
	case e.Msg != "":
		return e.Msg
	case e.Code != "":
		return e.Code
	case e.Err != nil:
		return e.Err.Error()
	}
	return "domain error"
}

func (e DomainError) Unwrap() error { return e.Err }

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

// InternalError hides storage failures behind a generic message while
// keeping the cause reachable through errors.Is/As.
type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

// AsDomain returns the first DomainError in err's chain.
func AsDomain(err error) (DomainError, bool) {
	var target DomainError
	ok := errors.As(err, &target)
	return target, ok
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}
