package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/foodorder/internal/common"
	"github.com/dmitrijs2005/foodorder/internal/dbx"
	"github.com/dmitrijs2005/foodorder/internal/logging"
	"github.com/dmitrijs2005/foodorder/internal/server/models"
	"github.com/dmitrijs2005/foodorder/internal/server/repositories/menu"
	"github.com/dmitrijs2005/foodorder/internal/server/repositories/repomanager"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSigner struct {
	fail map[string]bool
}

func (s fakeSigner) PresignGet(_ context.Context, key string) (string, error) {
	if s.fail[key] {
		return "", errors.New("presign failed")
	}
	return "https://cdn.example.com/" + key + "?sig=x", nil
}

func seededMenu() *repomanager.InMemoryRepositoryManager {
	m := repomanager.NewInMemoryRepositoryManager()
	m.SeedMenu(
		models.MenuItem{ID: "m2", Name: "Margherita", Price: decimal.RequireFromString("9.50"), Category: "pizza", ImageKey: "img/margherita.jpg", Available: true, SortOrder: 1},
		models.MenuItem{ID: "m1", Name: "Gelato", Price: decimal.RequireFromString("4.00"), Category: "dessert", IsFrozen: true, Available: true},
		models.MenuItem{ID: "m3", Name: "Calzone", Price: decimal.RequireFromString("11.00"), Category: "pizza", ImageKey: "img/calzone.jpg", Available: true, SortOrder: 2},
		models.MenuItem{ID: "m4", Name: "Sold out", Price: decimal.RequireFromString("1.00"), Category: "pizza", Available: false},
	)
	return m
}

func TestMenuService_List(t *testing.T) {
	svc := NewMenuService(nil, seededMenu(), fakeSigner{}, logging.Discard())

	items, err := svc.List(context.Background(), "")
	require.NoError(t, err)

	var ids []string
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"m1", "m2", "m3"}, ids)
	assert.True(t, items[0].IsFrozen)
	assert.Empty(t, items[0].ImageURL)
	assert.Equal(t, "https://cdn.example.com/img/margherita.jpg?sig=x", items[1].ImageURL)
	assert.True(t, items[1].Price.Equal(decimal.RequireFromString("9.5")))
}

func TestMenuService_ListByCategory(t *testing.T) {
	svc := NewMenuService(nil, seededMenu(), nil, logging.Discard())

	items, err := svc.List(context.Background(), "pizza")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Margherita", items[0].Name)
	assert.Equal(t, "img/margherita.jpg", items[0].ImageKey)
	assert.Empty(t, items[0].ImageURL)
}

func TestMenuService_PresignFailureKeepsItem(t *testing.T) {
	svc := NewMenuService(nil, seededMenu(), fakeSigner{fail: map[string]bool{"img/calzone.jpg": true}}, logging.Discard())

	items, err := svc.List(context.Background(), "pizza")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.NotEmpty(t, items[0].ImageURL)
	assert.Empty(t, items[1].ImageURL)
}

type failingMenu struct{}

func (failingMenu) ListAvailable(context.Context, string) ([]models.MenuItem, error) {
	return nil, errDB
}

type brokenMenuManager struct{ *repomanager.InMemoryRepositoryManager }

func (brokenMenuManager) Menu(dbx.DBTX) menu.Repository { return failingMenu{} }

func TestMenuService_StoreFailure(t *testing.T) {
	svc := NewMenuService(nil, brokenMenuManager{seededMenu()}, nil, logging.Discard())

	_, err := svc.List(context.Background(), "")
	assert.ErrorIs(t, err, common.ErrorInternal)
}
