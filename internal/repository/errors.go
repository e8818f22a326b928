package repository

import (
	"errors"

	"github.com/lib/pq"
)

// Common repository errors
var (
	// ErrNotFound is returned when a record is not found
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when a live user already uses the email
	ErrDuplicateEmail = errors.New("user with this email already exists")

	// ErrDuplicatePhone is returned when a live user already uses the phone number
	ErrDuplicatePhone = errors.New("user with this phone already exists")

	// ErrNoBrandOwnerProfile is returned when a business field targets a user without a brand-owner profile
	ErrNoBrandOwnerProfile = errors.New("user has no brand owner profile")
)

const (
	uniqueViolationCode = "23505"

	emailConstraint = "users_email_live_key"
	phoneConstraint = "users_phone_live_key"
)

// uniqueViolation reports whether err is a Postgres unique violation and on which constraint.
func uniqueViolation(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode {
		return pqErr.Constraint, true
	}
	return "", false
}

// duplicateUserError translates a unique violation on the users table into a sentinel.
func duplicateUserError(err error) error {
	constraint, ok := uniqueViolation(err)
	if !ok {
		return nil
	}
	switch constraint {
	case phoneConstraint:
		return ErrDuplicatePhone
	default:
		return ErrDuplicateEmail
	}
}
