// Package common defines the sentinel errors shared by the notekeeper
// stores and services, and the short messages shown to the user for them.
// Callers should use errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Constraint violations on register / profile update.
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrDuplicateUsername = errors.New("username already taken")

	// Lookup errors.
	ErrNotFound     = errors.New("not found")
	ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)
	ErrNoteNotFound = fmt.Errorf("note %w", ErrNotFound)

	// Session errors.
	ErrNotLoggedIn        = errors.New("no user logged in")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Substrate errors. ErrCorruptData is a storage error too.
	ErrStorage     = errors.New("storage failure")
	ErrCorruptData = fmt.Errorf("corrupt data: %w", ErrStorage)

	// Input errors raised before the core is called.
	ErrInvalidCategory = errors.New("invalid category")
)

// Message maps err to the text shown to the end user. Raw error details
// never leave this function.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrDuplicateEmail):
		return "Email already registered"
	case errors.Is(err, ErrDuplicateUsername):
		return "Username already taken"
	case errors.Is(err, ErrUserNotFound):
		return "User not found"
	case errors.Is(err, ErrNoteNotFound):
		return "Note not found"
	case errors.Is(err, ErrNotFound):
		return "Not found"
	case errors.Is(err, ErrNotLoggedIn):
		return "No user logged in"
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid credentials"
	case errors.Is(err, ErrInvalidCategory):
		return "Category must be one of: work, study, personal"
	case errors.Is(err, ErrStorage):
		return "Storage is unavailable, please try again"
	default:
		return "Something went wrong"
	}
}
