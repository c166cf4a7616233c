package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"chatadmin/internal/client/api"
	"chatadmin/internal/client/config"
	"chatadmin/internal/client/notify"
	"chatadmin/internal/client/repositories/kv"
	"chatadmin/internal/client/services"
	"chatadmin/internal/client/session"
	"chatadmin/internal/common"
	"chatadmin/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config    *config.Config
	db        *sql.DB
	session   *session.Store
	apiClient api.Client
	directory *services.DirectoryService
	profile   *services.ProfileService
	notifier  *notify.Channel
	log       logging.Logger
	reader    *bufio.Reader
	out       io.Writer
}

func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := kv.Open(ctx, cfg.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "err", err)
		return nil, err
	}

	sess := session.NewStore(kv.NewSQLiteRepository(db))
	apiClient := api.NewHTTPClient(cfg.ServerAddr, sess, cfg.RequestTimeout)
	notifier := notify.NewChannel(notify.DefaultTTL)

	app := &App{
		config:    cfg,
		db:        db,
		session:   sess,
		apiClient: apiClient,
		notifier:  notifier,
		log:       log,
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
	}
	notifier.OnChange(app.renderNotification)

	app.directory = services.NewDirectoryService(apiClient, sess, notifier, log)
	app.profile = services.NewProfileService(apiClient, sess, notifier, log)
	return app, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()

	if _, err := a.session.Restore(ctx); err != nil {
		if !errors.Is(err, common.ErrNotAuthenticated) {
			a.log.Error(ctx, "session restore failed", "err", err)
		}
	} else {
		fmt.Fprintf(a.out, "Welcome back, %s\n", a.session.Current().Email)
	}

	a.Root(ctx)
}

func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.Current() != nil
}

func (a *App) isAdmin() bool {
	current := a.session.Current()
	return current != nil && current.IsAdmin
}

// renderNotification prints every armed message; expiries (nil) are not
// echoed, the terminal keeps its scrollback.
func (a *App) renderNotification(msg *notify.Message) {
	if msg == nil {
		return
	}
	fmt.Fprintf(a.out, "[%s] %s\n", msg.Kind, msg.Text)
}
