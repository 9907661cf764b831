// Package carts persists cart snapshots in the storefront's local database
// so a browsing session survives a restart.
package carts

import (
	"context"
	"time"

	"github.com/dmitrijs2005/foodorder/internal/cart"
)

type Snapshot struct {
	Name      string
	Lines     []cart.LineItem
	UpdatedAt time.Time
}

type Repository interface {
	// Save replaces the stored lines of the named cart.
	Save(ctx context.Context, name string, lines []cart.LineItem, at time.Time) error
	// Load returns common.ErrorNotFound when nothing was saved under name.
	Load(ctx context.Context, name string) (*Snapshot, error)
	Delete(ctx context.Context, name string) error
	Names(ctx context.Context) ([]string, error)
}
