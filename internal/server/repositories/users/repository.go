package users

import (
	"context"

	"github.com/dmitrijs2005/foodorder/internal/server/models"
)

type Repository interface {
	// Create inserts u and fills in the generated ID and timestamps.
	// A duplicate username or email yields common.ErrorAlreadyExists.
	Create(ctx context.Context, u *models.User) (*models.User, error)
	// GetActiveByLogin finds an active user by username and role. Role is
	// part of the key: the same name under another role is not a match.
	GetActiveByLogin(ctx context.Context, username, role string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, id, hash string) error
}
