package services

import (
	"context"
	"encoding/base64"
	"net/http"
	"sync"

	"chatadmin/internal/client/api"
	"chatadmin/internal/client/models"
	"chatadmin/internal/client/notify"
	"chatadmin/internal/client/session"
	"chatadmin/internal/common"
	"chatadmin/internal/logging"
)

// MaxAvatarSize is the client-side limit on a staged profile picture.
const MaxAvatarSize = 5 << 20 // 5 MiB

// MinPasswordLength is the shortest password accepted before the change
// request is sent.
const MinPasswordLength = 6

// ProfileService manages the current user's own mutable profile fields and
// credential rotation. The staged avatar is a local preview only; nothing
// reaches the server until CommitAvatar.
type ProfileService struct {
	client   api.Client
	session  *session.Store
	notifier *notify.Channel
	log      logging.Logger

	mu     sync.Mutex
	staged string
}

func NewProfileService(client api.Client, sess *session.Store, notifier *notify.Channel, log logging.Logger) *ProfileService {
	return &ProfileService{
		client:   client,
		session:  sess,
		notifier: notifier,
		log:      log.With("component", "profile"),
	}
}

// StageAvatar validates the image size and stores a data-URI preview,
// distinct from the persisted avatar until explicitly committed. Oversized
// payloads are rejected locally; no request is made.
func (s *ProfileService) StageAvatar(image []byte, mimeType string) error {
	if len(image) > MaxAvatarSize {
		s.notifier.Error(common.ErrPayloadTooLarge.Error())
		return common.ErrPayloadTooLarge
	}
	if mimeType == "" {
		mimeType = http.DetectContentType(image)
	}

	s.mu.Lock()
	s.staged = "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(image)
	s.mu.Unlock()
	return nil
}

// StagedAvatar returns the pending preview, or "" when nothing is staged.
func (s *ProfileService) StagedAvatar() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.staged
}

// CommitAvatar uploads the staged preview. When the preview is empty or
// equals the persisted avatar it reports common.ErrNothingToSave without a
// network call. On success the server-returned canonical reference replaces
// both the preview and the identity's avatar.
func (s *ProfileService) CommitAvatar(ctx context.Context) error {
	current := s.session.Current()
	if current == nil {
		return common.ErrNotAuthenticated
	}

	s.mu.Lock()
	staged := s.staged
	s.mu.Unlock()

	if staged == "" || staged == current.ProfilePicture {
		s.notifier.Error("choose a new image first")
		return common.ErrNothingToSave
	}

	canonical, err := s.client.UploadProfilePicture(ctx, staged)
	if err != nil {
		s.log.Error(ctx, "avatar upload failed", "err", err)
		s.notifier.Error(userMessage(err, "failed to update profile picture"))
		return err
	}

	if _, err := s.session.UpdateIdentity(ctx, models.IdentityPatch{ProfilePicture: &canonical}); err != nil {
		return err
	}

	s.mu.Lock()
	s.staged = canonical
	s.mu.Unlock()

	s.notifier.Success("profile picture updated")
	return nil
}

// UpdateProfile sends both fields in one request and merges the server's
// returned values into the identity; local edits are not trusted verbatim.
func (s *ProfileService) UpdateProfile(ctx context.Context, name, email string) error {
	if s.session.Current() == nil {
		return common.ErrNotAuthenticated
	}

	updated, err := s.client.UpdateProfile(ctx, name, email)
	if err != nil {
		s.log.Error(ctx, "profile update failed", "err", err)
		s.notifier.Error(userMessage(err, "failed to update profile"))
		return err
	}

	patch := models.IdentityPatch{Name: &updated.Name, Email: &updated.Email}
	if _, err := s.session.UpdateIdentity(ctx, patch); err != nil {
		return err
	}

	s.notifier.Success("profile updated")
	return nil
}

// ChangePassword runs the ordered precondition chain and only then sends
// the change request. Each check short-circuits with its own validation
// error before any network traffic. A server rejection is surfaced with
// the server's reason when provided.
func (s *ProfileService) ChangePassword(ctx context.Context, current, newPassword, confirm string) error {
	if s.session.Current() == nil {
		return common.ErrNotAuthenticated
	}

	if err := validatePasswordChange(current, newPassword, confirm); err != nil {
		s.notifier.Error(err.Error())
		return err
	}

	if err := s.client.ChangePassword(ctx, current, newPassword); err != nil {
		s.log.Error(ctx, "password change failed", "err", err)
		s.notifier.Error(userMessage(err, "failed to change password"))
		return err
	}

	s.notifier.Success("password changed")
	return nil
}

func validatePasswordChange(current, newPassword, confirm string) error {
	switch {
	case current == "":
		return common.ErrMissingCurrentPassword
	case newPassword == "":
		return common.ErrMissingNewPassword
	case newPassword != confirm:
		return common.ErrPasswordMismatch
	case len(newPassword) < MinPasswordLength:
		return common.ErrPasswordTooShort
	}
	return nil
}
