package apperrors

import (
	"errors"
)

var (
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserNotFound      = errors.New("user not found")

	// Bad credentials or a refresh token that no longer matches the stored
	// hash. Shared between "no such email" and "wrong password" on purpose
	ErrUnauthorized = errors.New("access denied")

	// No resolved user on a call that requires one
	ErrNotAuthenticated = errors.New("not authenticated")

	// Authenticated but the role is not sufficient
	ErrForbidden = errors.New("forbidden")

	// Malformed, forged or expired token. Callers must not be able to tell
	// which of those happened from the error alone
	ErrInvalidToken = errors.New("invalid token")

	ErrTodoNotFound = errors.New("todo not found")
)
