package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/foodorder/internal/cart"
	"github.com/dmitrijs2005/foodorder/internal/catalog"
	"github.com/dmitrijs2005/foodorder/internal/client/client"
	"github.com/dmitrijs2005/foodorder/internal/client/config"
	"github.com/dmitrijs2005/foodorder/internal/client/repositories/carts"
	"github.com/dmitrijs2005/foodorder/internal/common"
	"github.com/dmitrijs2005/foodorder/internal/logging"
	"github.com/shopspring/decimal"
)

type fakeAPI struct {
	items     []catalog.Item
	menuCalls int
	menuErr   error
	pingErr   error

	loginErr   error
	logoutErr  error
	verifyErr  error
	changeErr  error
	createErr  error
	loggedIn   *client.User
	lastLogin  string
	changed    [2]string
	created    []client.NewUser
}

func (f *fakeAPI) Login(_ context.Context, username string, password []byte, role string) (*client.User, error) {
	f.lastLogin = username + "/" + string(password) + "/" + role
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.loggedIn = &client.User{ID: "u1", Username: username, Role: role}
	return f.loggedIn, nil
}

func (f *fakeAPI) Logout(context.Context) error {
	f.loggedIn = nil
	return f.logoutErr
}

func (f *fakeAPI) Verify(context.Context) (*client.Identity, error) {
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	if f.loggedIn == nil {
		return nil, &client.APIError{Status: 401, Message: "Access token required"}
	}
	return &client.Identity{UserID: f.loggedIn.ID, Username: f.loggedIn.Username, Role: f.loggedIn.Role}, nil
}

func (f *fakeAPI) ChangePassword(_ context.Context, current, next []byte) error {
	f.changed = [2]string{string(current), string(next)}
	return f.changeErr
}

func (f *fakeAPI) CreateUser(_ context.Context, u client.NewUser) (*client.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, u)
	return &client.User{ID: "u2", Username: u.Username, Email: u.Email, Role: u.Role}, nil
}

func (f *fakeAPI) Menu(_ context.Context, category string) ([]catalog.Item, error) {
	f.menuCalls++
	if f.menuErr != nil {
		return nil, f.menuErr
	}
	var out []catalog.Item
	for _, it := range f.items {
		if category == "" || it.Category == category {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeAPI) Ping(context.Context) error { return f.pingErr }

type memCarts struct {
	saved   map[string]carts.Snapshot
	saveErr  error
	saves    int
	namesErr error
}

func newMemCarts() *memCarts { return &memCarts{saved: map[string]carts.Snapshot{}} }

func (m *memCarts) Save(_ context.Context, name string, lines []cart.LineItem, at time.Time) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved[name] = carts.Snapshot{Name: name, Lines: lines, UpdatedAt: at}
	return nil
}

func (m *memCarts) Load(_ context.Context, name string) (*carts.Snapshot, error) {
	s, ok := m.saved[name]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &s, nil
}

func (m *memCarts) Delete(_ context.Context, name string) error {
	delete(m.saved, name)
	return nil
}

func (m *memCarts) Names(context.Context) ([]string, error) {
	if m.namesErr != nil {
		return nil, m.namesErr
	}
	var out []string
	for n := range m.saved {
		out = append(out, n)
	}
	sort.Strings(out)
	return out, nil
}

func sampleMenu() []catalog.Item {
	return []catalog.Item{
		{ID: "p1", Name: "Margherita", Price: decimal.RequireFromString("9.50"), Category: "pizza", Available: true},
		{ID: "p2", Name: "Calzone", Price: decimal.RequireFromString("11.00"), Category: "pizza", Available: true},
		{ID: "g1", Name: "Gelato", Price: decimal.RequireFromString("4.00"), Category: "dessert", IsFrozen: true, Available: true},
	}
}

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	return c
}

type harness struct {
	app   *App
	api   *fakeAPI
	carts *memCarts
	out   *[]string
}

func newHarness(t *testing.T, input ...string) *harness {
	t.Helper()
	out := capturePrint(t)
	api := &fakeAPI{items: sampleMenu()}
	repo := newMemCarts()
	r := bufio.NewReader(strings.NewReader(strings.Join(input, "\n") + "\n"))
	a := newApp(testConfig(), logging.Discard(), api, repo, r)
	a.now = func() time.Time { return time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC) }
	return &harness{app: a, api: api, carts: repo, out: out}
}

func (h *harness) printed() string { return strings.Join(*h.out, "\n") }

// stubPasswords makes getPassword return the given values in order.
func stubPasswords(t *testing.T, pws ...string) {
	t.Helper()
	orig := getPassword
	i := 0
	getPassword = func(string, io.Writer) ([]byte, error) {
		if i >= len(pws) {
			return nil, errors.New("no more passwords")
		}
		i++
		return []byte(pws[i-1]), nil
	}
	t.Cleanup(func() { getPassword = orig })
}
