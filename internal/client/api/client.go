// Package api implements the HTTP client for the chat service's account
// and administration endpoints. The Client interface is the seam the
// state-management services program against; HTTPClient is the concrete
// transport.
package api

import (
	"context"
	"errors"

	"chatadmin/internal/client/models"
)

// ErrUnavailable marks transport-level failures: the request never produced
// an HTTP response (connection refused, timeout, DNS failure).
var ErrUnavailable = errors.New("server unavailable")

// TokenSource supplies the bearer credential attached to authenticated
// requests. Implementations must return an error when no valid credential
// is held; the client then refuses to dispatch the request.
type TokenSource interface {
	Token() (string, error)
}

// Client is the remote service contract consumed by the session, profile,
// and directory layers.
type Client interface {
	// Login exchanges credentials for a bearer token and the identity record.
	Login(ctx context.Context, email, password string) (*models.Session, error)

	// Stats fetches the aggregate account counts (admin only).
	Stats(ctx context.Context) (*models.Stats, error)

	// Users fetches the full ordered account roster (admin only).
	Users(ctx context.Context) ([]models.User, error)

	// UpdateUser sends a partial administrative update for one account.
	UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error)

	// DeleteUser permanently removes an account.
	DeleteUser(ctx context.Context, id int64) error

	// UpdateProfile replaces the caller's own name and email.
	UpdateProfile(ctx context.Context, name, email string) (*models.User, error)

	// UploadProfilePicture stores the encoded image and returns the
	// canonical reference the server will serve it under.
	UploadProfilePicture(ctx context.Context, encoded string) (string, error)

	// ChangePassword rotates the caller's credential.
	ChangePassword(ctx context.Context, current, newPassword string) error
}
