package cli

import (
	"context"
	"errors"
	"os"

	"github.com/dmitrijs2005/foodorder/internal/client/client"
	"github.com/dmitrijs2005/foodorder/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errNotLoggedIn = errors.New("not logged in")

// Login asks for username, role and password and opens a server session.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Username", os.Stdout)
	if err != nil {
		return err
	}
	role, err := getSimpleText(a.reader, "Role (admin, kitchen, rider)", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword("Password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.api.Login(ctx, username, password, role)
	if err != nil {
		if errors.Is(err, client.ErrUnavailable) {
			a.setMode(ModeOffline)
		}
		return err
	}

	a.user = u
	a.setMode(ModeOnline)
	printlnFn("Logged in as", u.Username, "("+u.Role+")")
	return nil
}

// Logout ends the server session. The local user is forgotten even when
// the server cannot be reached.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	err := a.api.Logout(ctx)
	a.user = nil
	if err != nil && !errors.Is(err, client.ErrUnauthorized) {
		return err
	}
	printlnFn("Logged out")
	return nil
}

// Whoami asks the server whether the current session is still valid.
func (a *App) Whoami(ctx context.Context) error {
	id, err := a.api.Verify(ctx)
	if err != nil {
		// 401 means no session row, 403 a token that no longer parses.
		if errors.Is(err, client.ErrUnauthorized) || errors.Is(err, common.ErrForbidden) {
			a.user = nil
		}
		return err
	}
	printlnFn(id.Username, "role:", id.Role, "id:", id.UserID)
	return nil
}

// ChangePassword changes the password of the logged-in user. The server
// ends every session of the user, so a new login is required afterwards.
func (a *App) ChangePassword(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	current, err := getPassword("Current password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(current)

	next, err := getPassword("New password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(next)

	if err := a.api.ChangePassword(ctx, current, next); err != nil {
		return err
	}
	a.user = nil
	printlnFn("Password changed, please log in again")
	return nil
}

// AddUser creates a staff account. Only admins are allowed by the server.
func (a *App) AddUser(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	var nu client.NewUser
	var err error
	for _, f := range []struct {
		prompt string
		dst    *string
	}{
		{"New username", &nu.Username},
		{"Email", &nu.Email},
		{"Role (admin, kitchen, rider)", &nu.Role},
	} {
		if *f.dst, err = getSimpleText(a.reader, f.prompt, os.Stdout); err != nil {
			return err
		}
	}

	pw, err := getPassword("Initial password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)
	nu.Password = string(pw)

	u, err := a.api.CreateUser(ctx, nu)
	if err != nil {
		return err
	}
	printlnFn("Created", u.Username, "("+u.Role+")")
	return nil
}
