package services

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"chatadmin/internal/client/api"
	"chatadmin/internal/client/models"
	"chatadmin/internal/client/notify"
	"chatadmin/internal/client/session"
	"chatadmin/internal/common"
	"chatadmin/internal/logging"
)

// Overview is the paired snapshot shown on the admin view. It is replaced
// wholesale on every refresh, never patched incrementally.
type Overview struct {
	Stats models.Stats
	Users []models.User
}

// ConfirmFunc is injected by the presentation layer to gate irreversible
// actions. It receives the target's email and returns whether to proceed.
// The core never blocks on human input itself.
type ConfirmFunc func(email string) bool

// DirectoryService is the administrative view over all accounts: the
// roster plus aggregate stats, with self-protection on every mutation.
type DirectoryService struct {
	client   api.Client
	session  *session.Store
	notifier *notify.Channel
	log      logging.Logger

	mu       sync.Mutex
	overview *Overview
}

func NewDirectoryService(client api.Client, sess *session.Store, notifier *notify.Channel, log logging.Logger) *DirectoryService {
	return &DirectoryService{
		client:   client,
		session:  sess,
		notifier: notifier,
		log:      log.With("component", "directory"),
	}
}

// LoadOverview fetches stats and roster concurrently and replaces the
// snapshot only when both succeed. On any failure the previous snapshot is
// retained and the caller gets common.ErrLoadFailed; the admin view is
// never left half-populated.
func (s *DirectoryService) LoadOverview(ctx context.Context) (*Overview, error) {
	if s.session.Current() == nil {
		return nil, common.ErrNotAuthenticated
	}

	var (
		stats *models.Stats
		users []models.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = s.client.Stats(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = s.client.Users(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		s.log.Error(ctx, "overview load failed", "err", err)
		s.notifier.Error("failed to load dashboard data")
		return nil, fmt.Errorf("%w: %v", common.ErrLoadFailed, err)
	}

	fresh := &Overview{Stats: *stats, Users: users}
	s.mu.Lock()
	s.overview = fresh
	s.mu.Unlock()

	s.log.Debug(ctx, "overview refreshed", "users", len(users))
	return fresh, nil
}

// Overview returns the last successful snapshot, possibly stale, or nil
// before the first load.
func (s *DirectoryService) Overview() *Overview {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overview
}

// SetActive toggles another account's active flag. One PUT, then exactly
// one full refresh; no optimistic merge.
func (s *DirectoryService) SetActive(ctx context.Context, targetID int64, active bool) error {
	if err := s.guardTarget(targetID); err != nil {
		return err
	}

	patch := models.UserPatch{IsActive: &active}
	if _, err := s.client.UpdateUser(ctx, targetID, patch); err != nil {
		s.log.Error(ctx, "set active failed", "target", targetID, "err", err)
		s.notifier.Error(userMessage(err, "failed to update user"))
		return err
	}
	s.notifier.Success("user status updated")

	_, err := s.LoadOverview(ctx)
	return err
}

// SetAdmin toggles another account's admin flag. Same contract as SetActive.
func (s *DirectoryService) SetAdmin(ctx context.Context, targetID int64, admin bool) error {
	if err := s.guardTarget(targetID); err != nil {
		return err
	}

	patch := models.UserPatch{IsAdmin: &admin}
	if _, err := s.client.UpdateUser(ctx, targetID, patch); err != nil {
		s.log.Error(ctx, "set admin failed", "target", targetID, "err", err)
		s.notifier.Error(userMessage(err, "failed to update permissions"))
		return err
	}
	s.notifier.Success("user permissions updated")

	_, err := s.LoadOverview(ctx)
	return err
}

// Delete removes an account permanently. The confirm callback must approve
// the named email before anything leaves the client; declining is not an
// error. Returns whether the deletion was performed.
func (s *DirectoryService) Delete(ctx context.Context, targetID int64, targetEmail string, confirm ConfirmFunc) (bool, error) {
	if err := s.guardTarget(targetID); err != nil {
		return false, err
	}

	if confirm == nil || !confirm(targetEmail) {
		return false, nil
	}

	if err := s.client.DeleteUser(ctx, targetID); err != nil {
		s.log.Error(ctx, "delete failed", "target", targetID, "err", err)
		s.notifier.Error(userMessage(err, "failed to delete user"))
		return false, err
	}
	s.notifier.Success("user deleted")

	_, err := s.LoadOverview(ctx)
	return true, err
}

// guardTarget enforces the self-protection invariant before any network
// call: an admin can never deactivate, demote, or delete their own account
// from here.
func (s *DirectoryService) guardTarget(targetID int64) error {
	current := s.session.Current()
	if current == nil {
		return common.ErrNotAuthenticated
	}
	if current.ID == targetID {
		s.notifier.Error(common.ErrSelfActionForbidden.Error())
		return common.ErrSelfActionForbidden
	}
	return nil
}
