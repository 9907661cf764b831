// Package services contains the server's business logic. AuthService owns
// the session lifecycle: login, verify, logout, password change and account
// creation, plus housekeeping of expired sessions.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/foodorder/internal/common"
	"github.com/dmitrijs2005/foodorder/internal/dbx"
	"github.com/dmitrijs2005/foodorder/internal/logging"
	"github.com/dmitrijs2005/foodorder/internal/server/auth"
	"github.com/dmitrijs2005/foodorder/internal/server/config"
	"github.com/dmitrijs2005/foodorder/internal/server/metrics"
	"github.com/dmitrijs2005/foodorder/internal/server/models"
	"github.com/dmitrijs2005/foodorder/internal/server/notify"
	"github.com/dmitrijs2005/foodorder/internal/server/ratelimit"
	"github.com/dmitrijs2005/foodorder/internal/server/repositories/repomanager"
)

// Identity is the decoded caller attached to an authenticated request.
type Identity struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      models.PublicUser
}

type CreateUserInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

type AuthService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	jwtSecret     []byte
	tokenValidity time.Duration
	limiter       ratelimit.Limiter
	notifier      notify.Notifier
	logger        logging.Logger
	now           func() time.Time
}

func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config,
	limiter ratelimit.Limiter, notifier notify.Notifier, logger logging.Logger) *AuthService {
	if limiter == nil {
		limiter = ratelimit.Nop{}
	}
	if notifier == nil {
		notifier = notify.NewLogNotifier(logger)
	}
	return &AuthService{
		db:            db,
		repomanager:   m,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidity,
		limiter:       limiter,
		notifier:      notifier,
		logger:        logger,
		now:           time.Now,
	}
}

// Login checks the credentials of an active user with exactly this role and
// opens a new session. Every mismatch returns common.ErrorUnauthorized so the
// caller cannot tell which part was wrong.
func (s *AuthService) Login(ctx context.Context, username, password, role string) (*LoginResult, error) {
	if username == "" || password == "" || role == "" {
		return nil, common.ErrMissingCredentials
	}

	throttleKey := role + ":" + username
	if retry, err := s.limiter.Check(ctx, throttleKey); err != nil {
		if errors.Is(err, common.ErrTooManyAttempts) {
			metrics.LoginsTotal.WithLabelValues(metrics.RoleLabel(role), metrics.ResultThrottled).Inc()
			s.logger.Warn(ctx, "login throttled", "username", username, "role", role, "retry_after", retry)
			return nil, err
		}
		// Fail open when the limiter store is unreachable.
		s.logger.Error(ctx, "login limiter unavailable", "error", err)
	}

	user, err := s.repomanager.Users(s.db).GetActiveByLogin(ctx, username, role)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.loginFailed(ctx, throttleKey, role, "no active user for role", username)
			return nil, common.ErrorUnauthorized
		}
		metrics.LoginsTotal.WithLabelValues(metrics.RoleLabel(role), metrics.ResultError).Inc()
		s.logger.Error(ctx, "login lookup failed", "error", err)
		return nil, common.ErrorInternal
	}

	ok, err := auth.CheckPassword(user.PasswordHash, password)
	if err != nil {
		s.logger.Error(ctx, "stored password hash unusable", "user_id", user.ID, "error", err)
	}
	if !ok {
		s.loginFailed(ctx, throttleKey, role, "password mismatch", username)
		return nil, common.ErrorUnauthorized
	}

	if auth.NeedsRehash(user.PasswordHash) {
		s.upgradeHash(ctx, user, password)
	}

	token, expires, err := s.openSession(ctx, s.db, user)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(metrics.RoleLabel(role), metrics.ResultError).Inc()
		s.logger.Error(ctx, "session create failed", "user_id", user.ID, "error", err)
		return nil, common.ErrorInternal
	}

	if err := s.limiter.Reset(ctx, throttleKey); err != nil {
		s.logger.Warn(ctx, "login limiter reset failed", "error", err)
	}
	metrics.LoginsTotal.WithLabelValues(metrics.RoleLabel(role), metrics.ResultSuccess).Inc()
	s.logger.Info(ctx, "login", "user_id", user.ID, "role", role)

	return &LoginResult{Token: token, ExpiresAt: expires, User: user.Public()}, nil
}

// Verify accepts a token only if its signature and expiry check out AND a
// matching unexpired session row exists.
func (s *AuthService) Verify(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		metrics.VerificationsTotal.WithLabelValues(metrics.ResultFailure).Inc()
		return nil, common.ErrTokenRequired
	}

	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		metrics.VerificationsTotal.WithLabelValues(metrics.ResultFailure).Inc()
		s.logger.Debug(ctx, "token rejected", "error", err)
		return nil, common.ErrInvalidToken
	}

	if _, err := s.repomanager.Sessions(s.db).FindValid(ctx, token, s.now()); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			metrics.VerificationsTotal.WithLabelValues(metrics.ResultFailure).Inc()
			return nil, common.ErrSessionNotFound
		}
		metrics.VerificationsTotal.WithLabelValues(metrics.ResultError).Inc()
		s.logger.Error(ctx, "session lookup failed", "error", err)
		return nil, common.ErrorInternal
	}

	metrics.VerificationsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	return &Identity{UserID: claims.UserID, Username: claims.Username, Role: claims.Role}, nil
}

// Logout deletes the session for token. Unknown tokens are not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	n, err := s.repomanager.Sessions(s.db).DeleteByToken(ctx, token)
	if err != nil {
		s.logger.Error(ctx, "logout failed", "error", err)
		return common.ErrorInternal
	}
	metrics.SessionsRevokedTotal.WithLabelValues("logout").Add(float64(n))
	return nil
}

// ChangePassword re-checks the current password, stores the new hash and
// drops every session of the user in the same transaction.
func (s *AuthService) ChangePassword(ctx context.Context, id Identity, current, next string) error {
	if current == "" || next == "" {
		return common.ErrMissingCredentials
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorUnauthorized
		}
		s.logger.Error(ctx, "change password lookup failed", "error", err)
		return common.ErrorInternal
	}

	ok, err := auth.CheckPassword(user.PasswordHash, current)
	if err != nil {
		s.logger.Error(ctx, "stored password hash unusable", "user_id", user.ID, "error", err)
	}
	if !ok {
		s.logger.Warn(ctx, "change password rejected", "user_id", user.ID, "reason", "current password mismatch")
		return common.ErrorUnauthorized
	}

	hash, err := auth.HashPassword(next)
	if err != nil {
		s.logger.Error(ctx, "hash password failed", "error", err)
		return common.ErrorInternal
	}

	var revoked int64
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Users(tx).UpdatePasswordHash(ctx, user.ID, hash); err != nil {
			return fmt.Errorf("update password: %w", err)
		}
		n, err := s.repomanager.Sessions(tx).DeleteByUserID(ctx, user.ID)
		if err != nil {
			return fmt.Errorf("revoke sessions: %w", err)
		}
		revoked = n
		return nil
	})
	if err != nil {
		s.logger.Error(ctx, "change password failed", "user_id", user.ID, "error", err)
		return common.ErrorInternal
	}

	metrics.SessionsRevokedTotal.WithLabelValues("password_change").Add(float64(revoked))
	s.logger.Info(ctx, "password changed", "user_id", user.ID, "sessions_revoked", revoked)

	if err := s.notifier.PasswordChanged(ctx, user); err != nil {
		s.logger.Warn(ctx, "password change notification failed", "user_id", user.ID, "error", err)
	}
	return nil
}

// CreateUser lets an admin add an account. The password is stored hashed.
func (s *AuthService) CreateUser(ctx context.Context, caller Identity, in CreateUserInput) (*models.PublicUser, error) {
	if caller.Role != common.RoleAdmin {
		s.logger.Warn(ctx, "create user denied", "caller", caller.UserID, "role", caller.Role)
		return nil, common.ErrForbidden
	}

	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	in.Role = strings.TrimSpace(in.Role)
	if in.Username == "" || in.Email == "" || in.Password == "" || in.Role == "" {
		return nil, common.ErrMissingCredentials
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		s.logger.Error(ctx, "hash password failed", "error", err)
		return nil, common.ErrorInternal
	}

	user, err := s.repomanager.Users(s.db).Create(ctx, &models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
		IsActive:     true,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		s.logger.Error(ctx, "create user failed", "error", err)
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "user created", "user_id", user.ID, "role", user.Role, "by", caller.UserID)
	if err := s.notifier.AccountCreated(ctx, user, caller.Username); err != nil {
		s.logger.Warn(ctx, "account notification failed", "user_id", user.ID, "error", err)
	}

	pub := user.Public()
	return &pub, nil
}

// EnsureAdmin creates an active admin account unless one with that username
// already exists. It reports whether an account was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, email, password string) (bool, error) {
	if username == "" {
		return false, nil
	}
	if password == "" || email == "" {
		return false, common.ErrMissingCredentials
	}

	if _, err := s.repomanager.Users(s.db).GetByUsername(ctx, username); err == nil {
		return false, nil
	} else if !errors.Is(err, common.ErrorNotFound) {
		return false, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return false, err
	}
	_, err = s.repomanager.Users(s.db).Create(ctx, &models.User{
		Username: username, Email: email, PasswordHash: hash, Role: common.RoleAdmin, IsActive: true,
	})
	if errors.Is(err, common.ErrorAlreadyExists) {
		return false, nil
	}
	return err == nil, err
}

// PurgeExpiredSessions deletes session rows that can no longer be honored.
func (s *AuthService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	n, err := s.repomanager.Sessions(s.db).DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	metrics.SessionsRevokedTotal.WithLabelValues("expired").Add(float64(n))
	return n, nil
}

// Ping checks database connectivity.
func (s *AuthService) Ping(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	return s.db.PingContext(ctx)
}

func (s *AuthService) openSession(ctx context.Context, db dbx.DBTX, user *models.User) (string, time.Time, error) {
	token, expires, err := auth.GenerateToken(auth.Subject{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return "", time.Time{}, err
	}

	if err := s.repomanager.Sessions(db).Create(ctx, token, user.ID, expires); err != nil {
		return "", time.Time{}, err
	}
	return token, expires, nil
}

// upgradeHash swaps a legacy hash for bcrypt. Failure only costs another
// argon2 check on the next login.
func (s *AuthService) upgradeHash(ctx context.Context, user *models.User, password string) {
	hash, err := auth.HashPassword(password)
	if err == nil {
		err = s.repomanager.Users(s.db).UpdatePasswordHash(ctx, user.ID, hash)
	}
	if err != nil {
		s.logger.Warn(ctx, "password rehash failed", "user_id", user.ID, "error", err)
		return
	}
	user.PasswordHash = hash
	s.logger.Info(ctx, "password hash upgraded", "user_id", user.ID)
}

func (s *AuthService) loginFailed(ctx context.Context, key, role, reason, username string) {
	metrics.LoginsTotal.WithLabelValues(metrics.RoleLabel(role), metrics.ResultFailure).Inc()
	s.logger.Warn(ctx, "login rejected", "username", username, "role", role, "reason", reason)
	if err := s.limiter.Fail(ctx, key); err != nil {
		s.logger.Warn(ctx, "login limiter update failed", "error", err)
	}
}
