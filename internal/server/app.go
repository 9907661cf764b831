// Package server wires the auth server together: database and migrations,
// optional Redis, SMTP and S3 integrations, the HTTP API and the expired
// session janitor. It also handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/foodorder/internal/logging"
	"github.com/dmitrijs2005/foodorder/internal/server/config"
	"github.com/dmitrijs2005/foodorder/internal/server/notify"
	"github.com/dmitrijs2005/foodorder/internal/server/ratelimit"
	"github.com/dmitrijs2005/foodorder/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/foodorder/internal/server/rest"
	"github.com/dmitrijs2005/foodorder/internal/server/services"
	"github.com/dmitrijs2005/foodorder/internal/server/storage"
)

// seams for tests
var (
	openDatabase         = repomanager.OpenPostgres
	newRepositoryManager = func() repomanager.RepositoryManager { return repomanager.NewPostgresRepositoryManager() }
	logOutput            io.Writer = os.Stdout
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	closers     []io.Closer
	authService *services.AuthService
	menuService *services.MenuService
	http        *rest.Server
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	logger := logging.NewJSON(logOutput, c.LogLevel)

	db, err := openDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	app := &App{config: c, logger: logger, db: db}

	rm := newRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		app.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	var limiter ratelimit.Limiter = ratelimit.Nop{}
	if c.RedisAddr != "" {
		rdb, err := ratelimit.NewRedisClient(ctx, c.RedisAddr, c.RedisPassword, c.RedisDB)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("redis init error: %w", err)
		}
		app.closers = append(app.closers, rdb)
		limiter = ratelimit.NewRedisLimiter(rdb, c.LoginMaxAttempts, c.LoginWindow)
	} else {
		logger.Warn(ctx, "login throttling disabled, no redis address configured")
	}

	var notifier notify.Notifier
	if c.SMTPHost != "" {
		notifier = notify.NewMailNotifier(notify.SMTPConfig{
			Host:     c.SMTPHost,
			Port:     c.SMTPPort,
			Username: c.SMTPUsername,
			Password: c.SMTPPassword,
			From:     c.SMTPFrom,
		})
	} else {
		notifier = notify.NewLogNotifier(logger)
	}

	var images storage.ImageSigner
	if c.S3Bucket != "" {
		signer, err := storage.NewS3Signer(ctx, storage.S3Config{
			AccessKey:    c.S3AccessKey,
			SecretKey:    c.S3SecretKey,
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
			TTL:          c.ImageURLTTL,
		})
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("s3 init error: %w", err)
		}
		images = signer
	}

	app.authService = services.NewAuthService(db, rm, c, limiter, notifier, logger)
	app.menuService = services.NewMenuService(db, rm, images, logger)

	created, err := app.authService.EnsureAdmin(ctx, c.BootstrapAdminUsername, c.BootstrapAdminEmail, c.BootstrapAdminPassword)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("admin bootstrap error: %w", err)
	}
	if created {
		logger.Info(ctx, "bootstrap admin created", "username", c.BootstrapAdminUsername)
	}

	app.http = rest.NewServer(rest.Options{
		Address:       c.HTTPAddr,
		TokenValidity: c.TokenValidity,
		SecureCookie:  c.Production,
		CORSOrigins:   c.CORSOrigins,
	}, app.authService, app.menuService, logger)

	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.http.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// runSessionJanitor purges expired session rows every interval until ctx ends.
func (app *App) runSessionJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := app.authService.PurgeExpiredSessions(ctx)
			if err != nil {
				app.logger.Error(ctx, "session purge failed", "error", err)
				continue
			}
			if n > 0 {
				app.logger.Info(ctx, "expired sessions purged", "count", n)
			}
		}
	}
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.runSessionJanitor(ctx, app.config.SessionCleanupInterval)
	}()

	wg.Wait()
	app.Close()
	app.logger.Info(context.Background(), "App stopped")
}

// Close releases the database and any optional clients.
func (app *App) Close() {
	for _, c := range app.closers {
		_ = c.Close()
	}
	app.closers = nil
	if app.db != nil {
		_ = app.db.Close()
		app.db = nil
	}
}
