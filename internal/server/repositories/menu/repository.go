package menu

import (
	"context"

	"github.com/dmitrijs2005/foodorder/internal/server/models"
)

type Repository interface {
	// ListAvailable returns available items ordered for display. An empty
	// category returns every category.
	ListAvailable(ctx context.Context, category string) ([]models.MenuItem, error)
}
