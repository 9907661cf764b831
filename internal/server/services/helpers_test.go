package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/foodorder/internal/common"
	"github.com/dmitrijs2005/foodorder/internal/logging"
	"github.com/dmitrijs2005/foodorder/internal/server/auth"
	"github.com/dmitrijs2005/foodorder/internal/server/config"
	"github.com/dmitrijs2005/foodorder/internal/server/models"
	"github.com/dmitrijs2005/foodorder/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/require"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func testConfig() *config.Config {
	return &config.Config{SecretKey: "test-secret", TokenValidity: 24 * time.Hour}
}

type fakeLimiter struct {
	blocked  bool
	checkErr error
	fails    []string
	resets   []string
}

func (f *fakeLimiter) Check(context.Context, string) (time.Duration, error) {
	if f.blocked {
		return time.Minute, common.ErrTooManyAttempts
	}
	return 0, f.checkErr
}

func (f *fakeLimiter) Fail(_ context.Context, k string) error {
	f.fails = append(f.fails, k)
	return nil
}

func (f *fakeLimiter) Reset(_ context.Context, k string) error {
	f.resets = append(f.resets, k)
	return nil
}

type fakeNotifier struct {
	changed []string
	created []string
	err     error
}

func (f *fakeNotifier) PasswordChanged(_ context.Context, u *models.User) error {
	f.changed = append(f.changed, u.Username)
	return f.err
}

func (f *fakeNotifier) AccountCreated(_ context.Context, u *models.User, by string) error {
	f.created = append(f.created, u.Username+" by "+by)
	return f.err
}

type fixture struct {
	svc      *AuthService
	store    *repomanager.InMemoryRepositoryManager
	mock     sqlmock.Sqlmock
	limiter  *fakeLimiter
	notifier *fakeNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, mock := newSQLMockDB(t)
	f := &fixture{
		store:    repomanager.NewInMemoryRepositoryManager(),
		mock:     mock,
		limiter:  &fakeLimiter{},
		notifier: &fakeNotifier{},
	}
	f.svc = NewAuthService(db, f.store, testConfig(), f.limiter, f.notifier, logging.Discard())
	return f
}

func (f *fixture) seedUser(t *testing.T, username, password, role string, active bool) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	u, err := f.store.Users(nil).Create(context.Background(), &models.User{
		Username: username, Email: username + "@example.com", PasswordHash: hash, Role: role, IsActive: active,
	})
	require.NoError(t, err)
	return u
}

var errDB = errors.New("db down")
