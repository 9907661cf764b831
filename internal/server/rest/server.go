// Package rest exposes the auth and menu services over HTTP/JSON with gin.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/foodorder/internal/catalog"
	"github.com/dmitrijs2005/foodorder/internal/logging"
	"github.com/dmitrijs2005/foodorder/internal/server/metrics"
	"github.com/dmitrijs2005/foodorder/internal/server/models"
	"github.com/dmitrijs2005/foodorder/internal/server/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// AuthService is the part of services.AuthService the handlers call.
type AuthService interface {
	Login(ctx context.Context, username, password, role string) (*services.LoginResult, error)
	Verify(ctx context.Context, token string) (*services.Identity, error)
	Logout(ctx context.Context, token string) error
	ChangePassword(ctx context.Context, id services.Identity, current, next string) error
	CreateUser(ctx context.Context, caller services.Identity, in services.CreateUserInput) (*models.PublicUser, error)
	Ping(ctx context.Context) error
}

type MenuService interface {
	List(ctx context.Context, category string) ([]catalog.Item, error)
}

type Options struct {
	Address       string
	TokenValidity time.Duration
	// SecureCookie marks the session cookie Secure. Enable behind TLS.
	SecureCookie bool
	CORSOrigins  []string
}

type Server struct {
	opts   Options
	auth   AuthService
	menu   MenuService
	logger logging.Logger
	engine *gin.Engine
}

func NewServer(opts Options, a AuthService, m MenuService, l logging.Logger) *Server {
	s := &Server{
		opts:   opts,
		auth:   a,
		menu:   m,
		logger: l.With("module", "http_server"),
	}
	s.engine = s.routes()
	return s
}

// Handler returns the configured gin engine.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger(), observe())

	if len(s.opts.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     s.opts.CORSOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	api := r.Group("/api")
	api.GET("/health", s.health)
	api.GET("/menu", s.listMenu)

	a := api.Group("/auth")
	a.POST("/login", s.login)

	protected := a.Group("", s.authRequired())
	protected.POST("/logout", s.logout)
	protected.GET("/verify", s.verify)
	protected.POST("/change-password", s.changePassword)
	protected.POST("/create-user", requireAdmin(), s.createUser)

	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Address,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.opts.Address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
