package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it
// with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a
// lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	EditProfile(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	StageAvatarFile(ctx context.Context, path string) error
	SaveAvatar(ctx context.Context) error
	ShowUsers(ctx context.Context) error
	Refresh(ctx context.Context) error
	SetUserActive(ctx context.Context, args []string, active bool) error
	SetUserAdmin(ctx context.Context, args []string, admin bool) error
	DeleteUser(ctx context.Context, args []string) error
	Dismiss(ctx context.Context) error
}

// runREPL starts a read–eval–print loop over the scanner. It parses the
// first token of each line as the command and dispatches to methods on
// 'a'. Unknown commands are reported back to the user. The loop exits on
// scanner EOF or when the user types "exit" or "quit".
//
// Errors returned by command handlers are ignored here; handlers surface
// their own outcomes through the notification channel. This keeps the
// loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("chatadmin %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			switch {
			case !a.isLoggedIn():
				printlnFn("Available commands: login, exit")
			case a.isAdmin():
				printlnFn("Available commands: whoami, profile, passwd, avatar <path>, saveavatar, users, refresh, activate <id>, deactivate <id>, promote <id>, demote <id>, delete <id>, dismiss, logout, exit")
			default:
				printlnFn("Available commands: whoami, profile, passwd, avatar <path>, saveavatar, dismiss, logout, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "profile":
			_ = a.EditProfile(ctx)

		case "passwd":
			_ = a.ChangePassword(ctx)

		case "avatar":
			if len(args) == 0 {
				printlnFn("Usage: avatar <path>")
				continue
			}
			_ = a.StageAvatarFile(ctx, args[0])

		case "saveavatar":
			_ = a.SaveAvatar(ctx)

		case "users", "u":
			_ = a.ShowUsers(ctx)

		case "refresh":
			_ = a.Refresh(ctx)

		case "activate":
			_ = a.SetUserActive(ctx, args, true)

		case "deactivate":
			_ = a.SetUserActive(ctx, args, false)

		case "promote":
			_ = a.SetUserAdmin(ctx, args, true)

		case "demote":
			_ = a.SetUserAdmin(ctx, args, false)

		case "delete":
			_ = a.DeleteUser(ctx, args)

		case "dismiss":
			_ = a.Dismiss(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
