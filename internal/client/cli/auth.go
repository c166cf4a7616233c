package cli

import (
	"context"
	"errors"
	"fmt"

	"chatadmin/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in
// tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials, authenticates against the server, and
// persists the returned identity and bearer token. The password buffer is
// wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	sess, err := a.apiClient.Login(ctx, email, string(password))
	if err != nil {
		a.log.Error(ctx, "login failed", "err", err)
		a.notifier.Error(failureText(err, "login failed"))
		return err
	}

	if err := a.session.Persist(ctx, sess.User, sess.AccessToken); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", sess.User.Email)
	return nil
}

// Logout destroys the persisted session. Idempotent.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Clear(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// failureText picks the message shown for a failed request: the server's
// detail when present, the fallback otherwise.
func failureText(err error, fallback string) string {
	var re *common.RemoteError
	if errors.As(err, &re) && re.Detail != "" {
		return re.Detail
	}
	return fallback
}
