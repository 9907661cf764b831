package carts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/foodorder/internal/cart"
	"github.com/dmitrijs2005/foodorder/internal/common"
	"github.com/dmitrijs2005/foodorder/internal/dbx"
	"github.com/shopspring/decimal"
)

// SQLiteRepository implements Repository on a *sql.DB; Save runs in its own
// transaction.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Save(ctx context.Context, name string, lines []cart.LineItem, at time.Time) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM cart_lines WHERE session_name = ?`, name); err != nil {
			return fmt.Errorf("failed to clear cart lines: %w", err)
		}

		for i, l := range lines {
			p := l.Product
			_, err := tx.ExecContext(ctx, `INSERT INTO cart_lines
				(session_name, position, product_id, name, unit_price, image_ref, category, description, frozen, quantity)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				name, i, p.ID, p.Name, p.UnitPrice.String(), p.ImageRef, p.Category, p.Description, p.Frozen, l.Quantity)
			if err != nil {
				return fmt.Errorf("failed to insert cart line: %w", err)
			}
		}

		_, err := tx.ExecContext(ctx, `INSERT INTO cart_sessions (session_name, updated_at) VALUES (?, ?)
			ON CONFLICT(session_name) DO UPDATE SET updated_at = excluded.updated_at`, name, at.UTC())
		if err != nil {
			return fmt.Errorf("failed to touch cart session: %w", err)
		}
		return nil
	})
}

func (r *SQLiteRepository) Load(ctx context.Context, name string) (*Snapshot, error) {
	s := &Snapshot{Name: name}
	err := r.db.QueryRowContext(ctx, `SELECT updated_at FROM cart_sessions WHERE session_name = ?`, name).Scan(&s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `SELECT product_id, name, unit_price, image_ref, category, description, frozen, quantity
		FROM cart_lines WHERE session_name = ? ORDER BY position`, name)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			l     cart.LineItem
			price string
		)
		if err := rows.Scan(&l.Product.ID, &l.Product.Name, &price, &l.Product.ImageRef,
			&l.Product.Category, &l.Product.Description, &l.Product.Frozen, &l.Quantity); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if l.Product.UnitPrice, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("bad stored price for %s: %w", l.Product.ID, err)
		}
		s.Lines = append(s.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, name string) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM cart_lines WHERE session_name = ?`, name); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM cart_sessions WHERE session_name = ?`, name); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		return nil
	})
}

func (r *SQLiteRepository) Names(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT session_name FROM cart_sessions ORDER BY updated_at DESC, session_name`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
