// Package session owns the authenticated identity and bearer credential:
// the single source of truth for "who is logged in", persisted across
// restarts through an injected key-value repository.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"chatadmin/internal/client/models"
	"chatadmin/internal/client/repositories/kv"
	"chatadmin/internal/common"
)

// Slot names in the durable store: one for the serialized identity, one
// for the bearer credential string.
const (
	slotIdentity = "identity"
	slotToken    = "token"
)

// Store holds the current identity and credential in memory and mirrors
// them into the kv repository. All mutations go through Store, so every
// successful write is immediately visible to other components in-process.
type Store struct {
	repo kv.Repository

	mu       sync.RWMutex
	identity *models.User
	token    string
	onChange []func(*models.User)
}

func NewStore(repo kv.Repository) *Store {
	return &Store{repo: repo}
}

// OnChange registers a callback invoked synchronously after every
// successful Persist, UpdateIdentity, or Clear. The argument is a copy of
// the current identity, nil when the session ended.
func (s *Store) OnChange(fn func(identity *models.User)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

// Restore reconstructs the session from durable storage. Absent or
// malformed slots mean unauthenticated: the caller gets
// common.ErrNotAuthenticated and any half-written state is wiped.
func (s *Store) Restore(ctx context.Context) (*models.User, error) {
	rawIdentity, err := s.repo.Get(ctx, slotIdentity)
	if err != nil {
		return nil, fmt.Errorf("restore identity: %w", err)
	}
	rawToken, err := s.repo.Get(ctx, slotToken)
	if err != nil {
		return nil, fmt.Errorf("restore credential: %w", err)
	}

	if rawIdentity == nil || len(rawToken) == 0 {
		return nil, common.ErrNotAuthenticated
	}

	var identity models.User
	if err := json.Unmarshal(rawIdentity, &identity); err != nil {
		_ = s.repo.Clear(ctx)
		return nil, common.ErrNotAuthenticated
	}

	s.mu.Lock()
	s.identity = &identity
	s.token = string(rawToken)
	s.mu.Unlock()

	s.notify()
	return s.Current(), nil
}

// Persist writes identity and credential in one transaction and then
// commits them to memory. The store never holds one without the other.
func (s *Store) Persist(ctx context.Context, identity models.User, token string) error {
	if token == "" {
		return errors.New("refusing to persist a session without a credential")
	}

	raw, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}

	err = s.repo.SetMany(ctx, map[string][]byte{
		slotIdentity: raw,
		slotToken:    []byte(token),
	})
	if err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	s.mu.Lock()
	s.identity = &identity
	s.token = token
	s.mu.Unlock()

	s.notify()
	return nil
}

// UpdateIdentity merges the non-nil patch fields into the current identity
// and re-persists it. Used after confirmed profile mutations; the patch
// carries the server-returned values, never unconfirmed local edits.
func (s *Store) UpdateIdentity(ctx context.Context, patch models.IdentityPatch) (*models.User, error) {
	s.mu.RLock()
	if s.identity == nil {
		s.mu.RUnlock()
		return nil, common.ErrNotAuthenticated
	}
	updated := *s.identity
	s.mu.RUnlock()

	if patch.Name != nil {
		updated.Name = *patch.Name
	}
	if patch.Email != nil {
		updated.Email = *patch.Email
	}
	if patch.ProfilePicture != nil {
		updated.ProfilePicture = *patch.ProfilePicture
	}

	raw, err := json.Marshal(updated)
	if err != nil {
		return nil, fmt.Errorf("encode identity: %w", err)
	}
	if err := s.repo.Set(ctx, slotIdentity, raw); err != nil {
		return nil, fmt.Errorf("persist identity: %w", err)
	}

	s.mu.Lock()
	s.identity = &updated
	s.mu.Unlock()

	s.notify()
	out := updated
	return &out, nil
}

// Clear removes the session from durable storage and memory. Idempotent.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	s.mu.Lock()
	s.identity = nil
	s.token = ""
	s.mu.Unlock()

	s.notify()
	return nil
}

// Current returns a copy of the authenticated identity, or nil when
// logged out.
func (s *Store) Current() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return nil
	}
	out := *s.identity
	return &out
}

// Token returns the bearer credential for outbound requests. It fails with
// common.ErrNotAuthenticated when no credential is held or when the token
// carries an already-passed exp claim; the server remains the authority on
// token validity, this only avoids doomed round-trips.
func (s *Store) Token() (string, error) {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()

	if token == "" {
		return "", common.ErrNotAuthenticated
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err == nil {
		exp, err := claims.GetExpirationTime()
		if err == nil && exp != nil && time.Now().After(exp.Time) {
			return "", fmt.Errorf("%w: token expired", common.ErrNotAuthenticated)
		}
	}
	return token, nil
}

func (s *Store) notify() {
	s.mu.RLock()
	callbacks := make([]func(*models.User), len(s.onChange))
	copy(callbacks, s.onChange)
	s.mu.RUnlock()

	identity := s.Current()
	for _, fn := range callbacks {
		fn(identity)
	}
}
