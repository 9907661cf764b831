package carts

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/foodorder/internal/cart"
	"github.com/dmitrijs2005/foodorder/internal/client/migrations"
	"github.com/dmitrijs2005/foodorder/internal/common"
	"github.com/pressly/goose/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	goose.SetBaseFS(migrations.Migrations)
	require.NoError(t, goose.SetDialect("sqlite3"))
	require.NoError(t, goose.UpContext(context.Background(), db, "."))
	return db
}

func line(id, name, price string, qty int, frozen bool) cart.LineItem {
	return cart.LineItem{
		Product:  cart.Product{ID: id, Name: name, UnitPrice: decimal.RequireFromString(price), Category: "c", Frozen: frozen},
		Quantity: qty,
	}
}

func TestSaveLoad_RoundTripKeepsOrder(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	at := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	lines := []cart.LineItem{
		line("p9", "Pizza", "9.50", 2, false),
		line("g1", "Gelato", "4.00", 1, true),
		line("a1", "Ayran", "1.25", 3, false),
	}
	require.NoError(t, r.Save(ctx, "default", lines, at))

	snap, err := r.Load(ctx, "default")
	require.NoError(t, err)
	require.Len(t, snap.Lines, 3)
	assert.Equal(t, []string{"p9", "g1", "a1"}, []string{snap.Lines[0].Product.ID, snap.Lines[1].Product.ID, snap.Lines[2].Product.ID})
	assert.True(t, snap.Lines[0].Product.UnitPrice.Equal(decimal.RequireFromString("9.5")))
	assert.True(t, snap.Lines[1].Product.Frozen)
	assert.Equal(t, 3, snap.Lines[2].Quantity)
	assert.True(t, at.Equal(snap.UpdatedAt))

	restored := cart.New(snap.Lines...)
	assert.True(t, restored.Subtotal().Equal(decimal.RequireFromString("26.75")))
}

func TestSave_ReplacesPreviousSnapshot(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, "default", []cart.LineItem{line("p1", "A", "1", 1, false), line("p2", "B", "2", 1, false)}, time.Now()))
	require.NoError(t, r.Save(ctx, "default", []cart.LineItem{line("p2", "B", "2", 5, false)}, time.Now()))

	snap, err := r.Load(ctx, "default")
	require.NoError(t, err)
	require.Len(t, snap.Lines, 1)
	assert.Equal(t, 5, snap.Lines[0].Quantity)
}

func TestSave_EmptyCartIsStillKnown(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, "empty", nil, time.Now()))
	snap, err := r.Load(ctx, "empty")
	require.NoError(t, err)
	assert.Empty(t, snap.Lines)
}

func TestLoad_Unknown(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	_, err := r.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDeleteAndNames(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, r.Save(ctx, "old", []cart.LineItem{line("p1", "A", "1", 1, false)}, base))
	require.NoError(t, r.Save(ctx, "new", []cart.LineItem{line("p1", "A", "1", 1, false)}, base.Add(time.Hour)))

	names, err := r.Names(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "old"}, names)

	require.NoError(t, r.Delete(ctx, "old"))
	_, err = r.Load(ctx, "old")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	names, err = r.Names(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"new"}, names)
}
