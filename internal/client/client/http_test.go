package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/dmitrijs2005/foodorder/internal/common"
	"github.com/dmitrijs2005/foodorder/internal/logging"
	"github.com/dmitrijs2005/foodorder/internal/server/auth"
	"github.com/dmitrijs2005/foodorder/internal/server/config"
	"github.com/dmitrijs2005/foodorder/internal/server/models"
	"github.com/dmitrijs2005/foodorder/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/foodorder/internal/server/rest"
	"github.com/dmitrijs2005/foodorder/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// newBackend runs the real HTTP API over an in-memory store.
func newBackend(t *testing.T) (*httptest.Server, *repomanager.InMemoryRepositoryManager) {
	t.Helper()

	store := repomanager.NewInMemoryRepositoryManager()
	cfg := &config.Config{SecretKey: "test-secret", TokenValidity: time.Hour}
	as := services.NewAuthService(nil, store, cfg, nil, nil, logging.Discard())
	ms := services.NewMenuService(nil, store, nil, logging.Discard())
	srv := rest.NewServer(rest.Options{TokenValidity: cfg.TokenValidity}, as, ms, logging.Discard())

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, store
}

func seed(t *testing.T, store *repomanager.InMemoryRepositoryManager, username, password, role string) {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	_, err = store.Users(nil).Create(context.Background(), &models.User{
		Username: username, Email: username + "@example.com", PasswordHash: hash, Role: role, IsActive: true,
	})
	require.NoError(t, err)
}

func TestHTTPClient_SessionFlow(t *testing.T) {
	ts, store := newBackend(t)
	seed(t, store, "chef1", "correct-pw", common.RoleKitchen)
	ctx := context.Background()

	c, err := NewHTTPClient(ts.URL, 5*time.Second)
	require.NoError(t, err)

	_, err = c.Verify(ctx)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = c.Login(ctx, "chef1", []byte("nope"), common.RoleKitchen)
	assert.ErrorIs(t, err, ErrUnauthorized)

	u, err := c.Login(ctx, "chef1", []byte("correct-pw"), common.RoleKitchen)
	require.NoError(t, err)
	assert.Equal(t, "chef1@example.com", u.Email)

	id, err := c.Verify(ctx)
	require.NoError(t, err)
	assert.Equal(t, "chef1", id.Username)
	assert.Equal(t, "kitchen", id.Role)

	require.NoError(t, c.Logout(ctx))

	_, err = c.Verify(ctx)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Access token required", apiErr.Message)
}

func TestHTTPClient_ChangePasswordNeedsBothFields(t *testing.T) {
	ts, store := newBackend(t)
	seed(t, store, "chef1", "old-pw", common.RoleKitchen)
	ctx := context.Background()

	c, err := NewHTTPClient(ts.URL, 5*time.Second)
	require.NoError(t, err)
	_, err = c.Login(ctx, "chef1", []byte("old-pw"), common.RoleKitchen)
	require.NoError(t, err)

	assert.ErrorIs(t, c.ChangePassword(ctx, []byte("old-pw"), nil), common.ErrMissingCredentials)
}

func TestHTTPClient_CreateUserNeedsAdmin(t *testing.T) {
	ts, store := newBackend(t)
	seed(t, store, "root", "admin-pw", common.RoleAdmin)
	seed(t, store, "rider1", "pw", common.RoleRider)
	ctx := context.Background()

	rider, err := NewHTTPClient(ts.URL, 5*time.Second)
	require.NoError(t, err)
	_, err = rider.Login(ctx, "rider1", []byte("pw"), common.RoleRider)
	require.NoError(t, err)

	nu := NewUser{Username: "chef2", Email: "chef2@example.com", Password: "pw", Role: common.RoleKitchen}
	_, err = rider.CreateUser(ctx, nu)
	assert.ErrorIs(t, err, common.ErrForbidden)

	admin, err := NewHTTPClient(ts.URL, 5*time.Second)
	require.NoError(t, err)
	_, err = admin.Login(ctx, "root", []byte("admin-pw"), common.RoleAdmin)
	require.NoError(t, err)

	u, err := admin.CreateUser(ctx, nu)
	require.NoError(t, err)
	assert.Equal(t, "chef2", u.Username)

	_, err = admin.CreateUser(ctx, nu)
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestHTTPClient_MenuAndPing(t *testing.T) {
	ts, store := newBackend(t)
	store.SeedMenu(
		models.MenuItem{ID: "p1", Name: "Margherita", Price: decimal.RequireFromString("9.50"), Category: "pizza", Available: true},
		models.MenuItem{ID: "d1", Name: "Gelato", Price: decimal.RequireFromString("4"), Category: "dessert", IsFrozen: true, Available: true},
	)
	ctx := context.Background()

	c, err := NewHTTPClient(ts.URL+"/", 5*time.Second)
	require.NoError(t, err)

	require.NoError(t, c.Ping(ctx))

	items, err := c.Menu(ctx, "")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Gelato", items[0].Name)
	assert.True(t, items[1].Price.Equal(decimal.RequireFromString("9.5")))

	items, err = c.Menu(ctx, "pizza")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestHTTPClient_Unavailable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	c, err := NewHTTPClient(url, time.Second)
	require.NoError(t, err)
	assert.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)
}

func TestHTTPClient_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"status":"unhealthy"}`))
	}))
	t.Cleanup(ts.Close)

	c, err := NewHTTPClient(ts.URL, time.Second)
	require.NoError(t, err)
	assert.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)
}

func TestNewHTTPClient_BadURL(t *testing.T) {
	_, err := NewHTTPClient("not a url", time.Second)
	assert.Error(t, err)
}

func TestAPIError_Unwrap(t *testing.T) {
	assert.ErrorIs(t, &APIError{Status: 429}, common.ErrTooManyAttempts)
	assert.Nil(t, (&APIError{Status: 404}).Unwrap())
	assert.Equal(t, "server returned 404", (&APIError{Status: 404}).Error())
}
