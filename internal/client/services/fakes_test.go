package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"chatadmin/internal/client/models"
	"chatadmin/internal/client/notify"
	"chatadmin/internal/client/session"
	"chatadmin/internal/logging"
)

// fakeClient implements api.Client for unit tests, recording calls and
// returning canned results.
type fakeClient struct {
	loginRet *models.Session
	loginErr error

	statsRet   *models.Stats
	statsErr   error
	statsCalls int

	usersRet   []models.User
	usersErr   error
	usersCalls int

	updateRet    *models.User
	updateErr    error
	updateCalls  int
	lastUpdateID int64
	lastPatch    models.UserPatch

	deleteErr    error
	deleteCalls  int
	lastDeleteID int64

	profileRet       *models.User
	profileErr       error
	lastProfileName  string
	lastProfileEmail string

	uploadRet   string
	uploadErr   error
	uploadCalls int
	lastUpload  string

	changeErr   error
	changeCalls int
	lastCurrent string
	lastNew     string
}

func (f *fakeClient) Login(_ context.Context, email, password string) (*models.Session, error) {
	return f.loginRet, f.loginErr
}

func (f *fakeClient) Stats(context.Context) (*models.Stats, error) {
	f.statsCalls++
	if f.statsErr != nil {
		return nil, f.statsErr
	}
	out := *f.statsRet
	return &out, nil
}

func (f *fakeClient) Users(context.Context) ([]models.User, error) {
	f.usersCalls++
	if f.usersErr != nil {
		return nil, f.usersErr
	}
	return append([]models.User(nil), f.usersRet...), nil
}

func (f *fakeClient) UpdateUser(_ context.Context, id int64, patch models.UserPatch) (*models.User, error) {
	f.updateCalls++
	f.lastUpdateID = id
	f.lastPatch = patch
	return f.updateRet, f.updateErr
}

func (f *fakeClient) DeleteUser(_ context.Context, id int64) error {
	f.deleteCalls++
	f.lastDeleteID = id
	return f.deleteErr
}

func (f *fakeClient) UpdateProfile(_ context.Context, name, email string) (*models.User, error) {
	f.lastProfileName, f.lastProfileEmail = name, email
	return f.profileRet, f.profileErr
}

func (f *fakeClient) UploadProfilePicture(_ context.Context, encoded string) (string, error) {
	f.uploadCalls++
	f.lastUpload = encoded
	return f.uploadRet, f.uploadErr
}

func (f *fakeClient) ChangePassword(_ context.Context, current, newPassword string) error {
	f.changeCalls++
	f.lastCurrent, f.lastNew = current, newPassword
	return f.changeErr
}

// memRepo is an in-memory kv.Repository for session fixtures.
type memRepo struct {
	data map[string][]byte
}

func newMemRepo() *memRepo { return &memRepo{data: map[string][]byte{}} }

func (m *memRepo) Get(_ context.Context, key string) ([]byte, error) {
	return m.data[key], nil
}

func (m *memRepo) Set(_ context.Context, key string, value []byte) error {
	m.data[key] = value
	return nil
}

func (m *memRepo) SetMany(_ context.Context, values map[string][]byte) error {
	for k, v := range values {
		m.data[k] = v
	}
	return nil
}

func (m *memRepo) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *memRepo) Clear(context.Context) error {
	m.data = map[string][]byte{}
	return nil
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testSession(t *testing.T, identity models.User) *session.Store {
	t.Helper()
	s := session.NewStore(newMemRepo())
	require.NoError(t, s.Persist(context.Background(), identity, "test-token"))
	return s
}

func testNotifier() *notify.Channel {
	return notify.NewChannel(time.Hour)
}
