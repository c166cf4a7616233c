package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"chatadmin/internal/client/services"
)

// ShowUsers prints the admin overview, loading it first when no snapshot
// exists yet.
func (a *App) ShowUsers(ctx context.Context) error {
	overview := a.directory.Overview()
	if overview == nil {
		var err error
		overview, err = a.directory.LoadOverview(ctx)
		if err != nil {
			return err
		}
	}
	a.printOverview(overview)
	return nil
}

// Refresh re-fetches stats and roster and prints the fresh snapshot.
func (a *App) Refresh(ctx context.Context) error {
	overview, err := a.directory.LoadOverview(ctx)
	if err != nil {
		return err
	}
	a.printOverview(overview)
	return nil
}

// SetUserActive toggles the active flag for the account named by args[0].
func (a *App) SetUserActive(ctx context.Context, args []string, active bool) error {
	id, err := parseUserID(args)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	return a.directory.SetActive(ctx, id, active)
}

// SetUserAdmin toggles the admin flag for the account named by args[0].
func (a *App) SetUserAdmin(ctx context.Context, args []string, admin bool) error {
	id, err := parseUserID(args)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	return a.directory.SetAdmin(ctx, id, admin)
}

// DeleteUser removes the account named by args[0], after an explicit
// confirmation that names the target's email.
func (a *App) DeleteUser(ctx context.Context, args []string) error {
	id, err := parseUserID(args)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	email, err := a.lookupEmail(ctx, id)
	if err != nil {
		return err
	}

	confirm := func(targetEmail string) bool {
		answer, err := getSimpleText(a.reader,
			fmt.Sprintf("Delete user %s permanently? (y/N)", targetEmail), a.out)
		if err != nil {
			return false
		}
		answer = strings.ToLower(answer)
		return answer == "y" || answer == "yes"
	}

	deleted, err := a.directory.Delete(ctx, id, email, confirm)
	if err == nil && !deleted {
		fmt.Fprintln(a.out, "Cancelled")
	}
	return err
}

// Dismiss clears the pending status message.
func (a *App) Dismiss(ctx context.Context) error {
	a.notifier.Dismiss()
	return nil
}

func (a *App) lookupEmail(ctx context.Context, id int64) (string, error) {
	overview := a.directory.Overview()
	if overview == nil {
		var err error
		overview, err = a.directory.LoadOverview(ctx)
		if err != nil {
			return "", err
		}
	}
	for _, u := range overview.Users {
		if u.ID == id {
			return u.Email, nil
		}
	}
	return "", fmt.Errorf("no user with id %d in the roster", id)
}

func (a *App) printOverview(overview *services.Overview) {
	fmt.Fprintf(a.out, "Users: %d total, %d active, %d admins\n",
		overview.Stats.TotalUsers, overview.Stats.ActiveUsers, overview.Stats.AdminUsers)

	for _, u := range overview.Users {
		flags := make([]string, 0, 2)
		if u.IsAdmin {
			flags = append(flags, "admin")
		}
		if !u.IsActive {
			flags = append(flags, "disabled")
		}
		suffix := ""
		if len(flags) > 0 {
			suffix = " [" + strings.Join(flags, ",") + "]"
		}
		fmt.Fprintf(a.out, "%4d  %-30s %s%s\n", u.ID, u.Email, u.Name, suffix)
	}
}

func parseUserID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("usage: <command> <user-id>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user id %q", args[0])
	}
	return id, nil
}
