// Package common defines shared constants and sentinel errors used across
// the chatadmin client. Callers should use errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Session errors.
	ErrNotAuthenticated = errors.New("not authenticated")

	// Administrative action errors.
	ErrSelfActionForbidden = errors.New("cannot perform this action on your own account")
	ErrLoadFailed          = errors.New("failed to load admin overview")

	// Profile / validation errors. Validation failures never reach the network.
	ErrNothingToSave          = errors.New("nothing to save")
	ErrPayloadTooLarge        = errors.New("image exceeds the 5 MiB limit")
	ErrMissingCurrentPassword = errors.New("current password is required")
	ErrMissingNewPassword     = errors.New("new password is required")
	ErrPasswordMismatch       = errors.New("new passwords do not match")
	ErrPasswordTooShort       = errors.New("password must be at least 6 characters")
)

// RemoteError carries the error detail reported by the server for a
// rejected request. Detail is the human-readable reason from the response
// body when present; Status is the HTTP status code.
type RemoteError struct {
	Status int
	Detail string
}

func (e *RemoteError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("server rejected the request (status %d)", e.Status)
}
