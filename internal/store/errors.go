package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Code is a stable classification of a row-store failure.
type Code string

const (
	CodeNotFound    Code = "not_found"
	CodeConflict    Code = "conflict"
	CodeUnavailable Code = "unavailable"
)

// Error carries the failing operation and its classification.
type Error struct {
	Code Code
	Op   string
	Err  error
}

var (
	ErrNotFound = &Error{Code: CodeNotFound}
	ErrConflict = &Error{Code: CodeConflict}
)

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Code, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error with the same code, so errors.Is(err, ErrNotFound)
// works for every wrapped not-found.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// CodeOf returns the classification of err, or "" when err is not a store error.
func CodeOf(err error) Code {
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

const pgUniqueViolation = "23505"

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	code := CodeUnavailable
	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		code = CodeNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		code = CodeConflict
	case errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation:
		code = CodeConflict
	}
	return &Error{Code: code, Op: op, Err: err}
}

func notFound(op string) error {
	return &Error{Code: CodeNotFound, Op: op, Err: gorm.ErrRecordNotFound}
}
