package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"os"
	"time"

	"github.com/dmitrijs2005/foodorder/internal/cart"
	"github.com/dmitrijs2005/foodorder/internal/catalog"
	"github.com/dmitrijs2005/foodorder/internal/client/client"
	"github.com/dmitrijs2005/foodorder/internal/client/config"
	"github.com/dmitrijs2005/foodorder/internal/client/repositories/carts"
	"github.com/dmitrijs2005/foodorder/internal/common"
	"github.com/dmitrijs2005/foodorder/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	api     client.Client
	carts   carts.Repository
	db      *sql.DB
	session *cart.Session
	menu    []catalog.Item
	user    *client.User
	Mode    Mode
	reader  *bufio.Reader
	now     func() time.Time
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stderr, c.LogLevel)

	db, err := client.InitDatabase(ctx, c.CartDBPath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	api, err := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a := newApp(c, logger, api, carts.NewSQLiteRepository(db), bufio.NewReader(os.Stdin))
	a.db = db
	if err := a.restoreCart(ctx); err != nil {
		logger.Warn(ctx, "saved cart not restored", "error", err)
	}
	return a, nil
}

func newApp(c *config.Config, l logging.Logger, api client.Client, repo carts.Repository, r *bufio.Reader) *App {
	a := &App{config: c, logger: l, api: api, carts: repo, reader: r, now: time.Now}
	a.session = cart.NewSession(cart.NotifierFunc(func(e cart.Event) {
		printlnFn(e.Message())
	}))
	return a
}

func (a *App) restoreCart(ctx context.Context) error {
	snap, err := a.carts.Load(ctx, a.config.SessionName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil
		}
		return err
	}
	a.session.Restore(cart.New(snap.Lines...))
	if n := a.session.ItemCount(); n > 0 {
		printlnFn("Restored cart", a.config.SessionName, "with", n, "item(s)")
	}
	return nil
}

// saveCart snapshots the cart after a mutation. Failures are logged; the
// in-memory cart stays authoritative.
func (a *App) saveCart(ctx context.Context) {
	if err := a.carts.Save(ctx, a.config.SessionName, a.session.Lines(), a.now()); err != nil {
		a.logger.Error(ctx, "cart snapshot failed", "error", err)
	}
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		a.logger.Info(context.Background(), "connectivity changed", "mode", string(mode))
	}
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

func (a *App) getStatus() string {
	s := ""
	if a.user != nil {
		s = a.user.Username + " "
	}
	s += string(a.Mode)
	if n := a.session.ItemCount(); n > 0 {
		s += " cart:" + itoa(n)
	}
	return s
}

// Run starts the connectivity watcher and the REPL, and blocks until the
// user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.Close()

	printlnFn("Welcome to the storefront (type 'help' for commands)")

	a.checkOnline(ctx)
	go a.StartOnlineStatusWatcher(ctx, 5*time.Second)

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}

func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
		a.db = nil
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := a.api.Ping(pctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}
