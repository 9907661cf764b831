package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type MenuItem struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	ImageKey    string
	IsFrozen    bool
	Available   bool
	SortOrder   int
	CreatedAt   time.Time
}
