package sessions

import (
	"context"
	"time"

	"github.com/dmitrijs2005/foodorder/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, token, userID string, expiresAt time.Time) error
	// FindValid returns the session for token if it expires after now.
	// Missing and expired rows both yield common.ErrorNotFound.
	FindValid(ctx context.Context, token string, now time.Time) (*models.Session, error)
	// DeleteByToken removes one session. Deleting an absent token is not an error.
	DeleteByToken(ctx context.Context, token string) (int64, error)
	// DeleteByUserID removes every session of a user in one statement.
	DeleteByUserID(ctx context.Context, userID string) (int64, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
