package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/foodorder/internal/dbx"
	"github.com/dmitrijs2005/foodorder/internal/server/repositories/menu"
	"github.com/dmitrijs2005/foodorder/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/foodorder/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to either the pool or a
// transaction, so services can compose several repositories in one tx.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Sessions(db dbx.DBTX) sessions.Repository
	Menu(db dbx.DBTX) menu.Repository
}
