// Package menu reads the menu served to the storefront.
package menu

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/foodorder/internal/dbx"
	"github.com/dmitrijs2005/foodorder/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListAvailable(ctx context.Context, category string) ([]models.MenuItem, error) {
	query :=
		`SELECT id, name, description, price, category, image_key, is_frozen, available, sort_order, created_at
		 FROM menu_items
		 WHERE available = TRUE AND ($1 = '' OR category = $1)
		 ORDER BY category, sort_order, name`

	rows, err := r.db.QueryContext(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	items := make([]models.MenuItem, 0)
	for rows.Next() {
		var it models.MenuItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.Price, &it.Category,
			&it.ImageKey, &it.IsFrozen, &it.Available, &it.SortOrder, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return items, nil
}
