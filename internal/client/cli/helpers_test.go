package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"chatadmin/internal/client/models"
	"chatadmin/internal/client/notify"
	"chatadmin/internal/client/services"
	"chatadmin/internal/client/session"
	"chatadmin/internal/logging"
)

// fakeAPI implements api.Client for CLI tests.
type fakeAPI struct {
	loginRet *models.Session
	loginErr error

	lastLoginEmail    string
	lastLoginPassword string

	statsRet *models.Stats
	usersRet []models.User

	updateCalls int
	deleteCalls int
	lastDelete  int64

	uploadRet string

	profileRet       *models.User
	lastProfileName  string
	lastProfileEmail string

	changeErr error
}

func (f *fakeAPI) Login(_ context.Context, email, password string) (*models.Session, error) {
	f.lastLoginEmail, f.lastLoginPassword = email, password
	return f.loginRet, f.loginErr
}

func (f *fakeAPI) Stats(context.Context) (*models.Stats, error) {
	out := *f.statsRet
	return &out, nil
}

func (f *fakeAPI) Users(context.Context) ([]models.User, error) {
	return append([]models.User(nil), f.usersRet...), nil
}

func (f *fakeAPI) UpdateUser(_ context.Context, id int64, patch models.UserPatch) (*models.User, error) {
	f.updateCalls++
	return &models.User{ID: id}, nil
}

func (f *fakeAPI) DeleteUser(_ context.Context, id int64) error {
	f.deleteCalls++
	f.lastDelete = id
	return nil
}

func (f *fakeAPI) UpdateProfile(_ context.Context, name, email string) (*models.User, error) {
	f.lastProfileName, f.lastProfileEmail = name, email
	return f.profileRet, nil
}

func (f *fakeAPI) UploadProfilePicture(_ context.Context, encoded string) (string, error) {
	return f.uploadRet, nil
}

func (f *fakeAPI) ChangePassword(_ context.Context, current, newPassword string) error {
	return f.changeErr
}

// memRepo is an in-memory kv.Repository.
type memRepo struct {
	data map[string][]byte
}

func newMemRepo() *memRepo { return &memRepo{data: map[string][]byte{}} }

func (m *memRepo) Get(_ context.Context, key string) ([]byte, error) { return m.data[key], nil }
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

// newTestApp wires an App around the fake API with the given stdin script.
func newTestApp(t *testing.T, f *fakeAPI, input string) (*App, *bytes.Buffer) {
	t.Helper()

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	sess := session.NewStore(newMemRepo())
	notifier := notify.NewChannel(time.Hour)
	var out bytes.Buffer

	app := &App{
		session:   sess,
		apiClient: f,
		notifier:  notifier,
		log:       log,
		reader:    bufio.NewReader(strings.NewReader(input)),
		out:       &out,
	}
	notifier.OnChange(app.renderNotification)
	app.directory = services.NewDirectoryService(f, sess, notifier, log)
	app.profile = services.NewProfileService(f, sess, notifier, log)
	return app, &out
}

func loginTestApp(t *testing.T, app *App, identity models.User) {
	t.Helper()
	require.NoError(t, app.session.Persist(context.Background(), identity, "test-token"))
}

func stubInputs(t *testing.T, text string, password []byte) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return text, nil }
	getPassword = func(_ string, _ io.Writer) ([]byte, error) {
		return append([]byte(nil), password...), nil
	}
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}
