package client

import (
	"context"

	"github.com/dmitrijs2005/foodorder/internal/catalog"
)

// User is the public profile returned by login and create-user.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Identity is what verify reports for the current session.
type Identity struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type NewUser struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type Client interface {
	Login(ctx context.Context, username string, password []byte, role string) (*User, error)
	Logout(ctx context.Context) error
	Verify(ctx context.Context) (*Identity, error)
	ChangePassword(ctx context.Context, current, next []byte) error
	CreateUser(ctx context.Context, u NewUser) (*User, error)
	Menu(ctx context.Context, category string) ([]catalog.Item, error)
	Ping(ctx context.Context) error
}
