// Package service implements the application's business operations on top
// of the store interfaces: task mutation with activity logging, template
// management, user account management and aggregation.
package service

import "errors"

// Common service-level sentinel errors.
var (
	// ErrEmptyTaskIDs is returned by bulk operations when the request
	// carries no task ids. Mapped to a 400 by the API layer.
	ErrEmptyTaskIDs = errors.New("taskIds must be a non-empty array")

	// ErrCurrentPasswordIncorrect is returned by password changes when the
	// presented current password does not match. Mapped to a 401.
	ErrCurrentPasswordIncorrect = errors.New("current password is incorrect")
)
