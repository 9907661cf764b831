package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/foodorder/internal/catalog"
	"github.com/dmitrijs2005/foodorder/internal/common"
	"github.com/dmitrijs2005/foodorder/internal/logging"
	"github.com/dmitrijs2005/foodorder/internal/server/models"
	"github.com/dmitrijs2005/foodorder/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/foodorder/internal/server/storage"
)

// MenuService serves the storefront menu, attaching presigned image URLs
// when an image store is configured.
type MenuService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	images      storage.ImageSigner
	logger      logging.Logger
}

// NewMenuService builds the service. images may be nil.
func NewMenuService(db *sql.DB, m repomanager.RepositoryManager, images storage.ImageSigner, logger logging.Logger) *MenuService {
	return &MenuService{db: db, repomanager: m, images: images, logger: logger}
}

func (s *MenuService) List(ctx context.Context, category string) ([]catalog.Item, error) {
	rows, err := s.repomanager.Menu(s.db).ListAvailable(ctx, category)
	if err != nil {
		s.logger.Error(ctx, "list menu failed", "error", err)
		return nil, common.ErrorInternal
	}

	items := make([]catalog.Item, 0, len(rows))
	for _, r := range rows {
		it := toCatalogItem(r)
		if s.images != nil && r.ImageKey != "" {
			url, err := s.images.PresignGet(ctx, r.ImageKey)
			if err != nil {
				s.logger.Warn(ctx, "presign image failed", "key", r.ImageKey, "error", err)
			} else {
				it.ImageURL = url
			}
		}
		items = append(items, it)
	}
	return items, nil
}

func toCatalogItem(m models.MenuItem) catalog.Item {
	return catalog.Item{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Category:    m.Category,
		ImageKey:    m.ImageKey,
		IsFrozen:    m.IsFrozen,
		Available:   m.Available,
	}
}
