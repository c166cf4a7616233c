package cli

import (
	"context"
	"fmt"
	"os"

	"chatadmin/internal/common"
)

// WhoAmI prints the current identity.
func (a *App) WhoAmI(ctx context.Context) error {
	current := a.session.Current()
	if current == nil {
		return common.ErrNotAuthenticated
	}

	fmt.Fprintf(a.out, "id:      %d\n", current.ID)
	fmt.Fprintf(a.out, "name:    %s\n", current.Name)
	fmt.Fprintf(a.out, "email:   %s\n", current.Email)
	fmt.Fprintf(a.out, "admin:   %v\n", current.IsAdmin)
	fmt.Fprintf(a.out, "active:  %v\n", current.IsActive)
	if current.ProfilePicture != "" {
		fmt.Fprintf(a.out, "avatar:  %s\n", current.ProfilePicture)
	}
	return nil
}

// EditProfile prompts for new name and email and submits both in one
// request. Empty input keeps the current value.
func (a *App) EditProfile(ctx context.Context) error {
	current := a.session.Current()
	if current == nil {
		return common.ErrNotAuthenticated
	}

	name, err := getSimpleText(a.reader, fmt.Sprintf("Name [%s]", current.Name), a.out)
	if err != nil {
		return err
	}
	if name == "" {
		name = current.Name
	}

	email, err := getSimpleText(a.reader, fmt.Sprintf("Email [%s]", current.Email), a.out)
	if err != nil {
		return err
	}
	if email == "" {
		email = current.Email
	}

	return a.profile.UpdateProfile(ctx, name, email)
}

// ChangePassword prompts for the current, new, and confirmation passwords
// and submits the change. All three buffers are wiped before returning,
// success or failure.
func (a *App) ChangePassword(ctx context.Context) error {
	current, err := getPassword("Current password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(current)

	newPassword, err := getPassword("New password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(newPassword)

	confirm, err := getPassword("Confirm new password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	return a.profile.ChangePassword(ctx, string(current), string(newPassword), string(confirm))
}

// StageAvatarFile reads an image from disk and stages it as the pending
// avatar preview. Nothing is uploaded until SaveAvatar.
func (a *App) StageAvatarFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		a.notifier.Error("could not read image file")
		return err
	}

	if err := a.profile.StageAvatar(data, ""); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Staged %s (%d bytes); run 'saveavatar' to upload\n", path, len(data))
	return nil
}

// SaveAvatar uploads the staged preview.
func (a *App) SaveAvatar(ctx context.Context) error {
	return a.profile.CommitAvatar(ctx)
}
