// Package common contains sentinel errors and small helpers shared across
// InsightBoard components. Callers match the errors with errors.Is.
package common

import "errors"

var (

	// repository specific errors
	ErrorNotFound = errors.New("not found")

	// service specific errors
	ErrorInternal = errors.New("internal error")

	// auth flow errors
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("wrong email or password")
	ErrInvalidToken       = errors.New("invalid refresh token")

	// note authorization errors
	ErrForbidden = errors.New("not the owner of this note")
	ErrInvalidID = errors.New("invalid note id")
)
