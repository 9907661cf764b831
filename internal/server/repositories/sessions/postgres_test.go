package sessions

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/foodorder/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const insertQ = `(?s)^INSERT\s+INTO\s+user_sessions\s*\(token,\s*user_id,\s*expires_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)$`

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	exp := time.Now().Add(24 * time.Hour)
	mock.ExpectExec(insertQ).
		WithArgs("tok123", "u1", exp).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Create(context.Background(), "tok123", "u1", exp))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_Errors(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertQ).WillReturnError(&pgconn.PgError{Code: "23505"})
	assert.ErrorIs(t, repo.Create(context.Background(), "dup", "u1", time.Now()), common.ErrorAlreadyExists)

	mock.ExpectExec(insertQ).WillReturnError(errors.New("db down"))
	err := repo.Create(context.Background(), "tok", "u1", time.Now())
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

const findQ = `(?s)^SELECT\s+id,\s*token,\s*user_id,\s*expires_at,\s*created_at\s+FROM\s+user_sessions\s+WHERE\s+token\s*=\s*\$1\s+AND\s+expires_at\s*>\s*\$2$`

func TestFindValid_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	exp := now.Add(time.Hour)
	mock.ExpectQuery(findQ).
		WithArgs("tok123", now).
		WillReturnRows(sqlmock.NewRows([]string{"id", "token", "user_id", "expires_at", "created_at"}).
			AddRow(int64(7), "tok123", "u1", exp, now))

	got, err := repo.FindValid(context.Background(), "tok123", now)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, "u1", got.UserID)
	assert.True(t, got.ExpiresAt.Equal(exp))
}

func TestFindValid_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(findQ).WillReturnError(sql.ErrNoRows)

	_, err := repo.FindValid(context.Background(), "gone", time.Now())
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestFindValid_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(findQ).WillReturnError(errors.New("db err"))

	_, err := repo.FindValid(context.Background(), "tok", time.Now())
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorNotFound)
}

func TestDeletes(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name  string
		query string
		arg   any
		call  func(r *PostgresRepository) (int64, error)
	}{
		{
			name:  "by token",
			query: `^DELETE\s+FROM\s+user_sessions\s+WHERE\s+token\s*=\s*\$1$`,
			arg:   "tok",
			call:  func(r *PostgresRepository) (int64, error) { return r.DeleteByToken(context.Background(), "tok") },
		},
		{
			name:  "by user id",
			query: `^DELETE\s+FROM\s+user_sessions\s+WHERE\s+user_id\s*=\s*\$1$`,
			arg:   "u1",
			call:  func(r *PostgresRepository) (int64, error) { return r.DeleteByUserID(context.Background(), "u1") },
		},
		{
			name:  "expired",
			query: `^DELETE\s+FROM\s+user_sessions\s+WHERE\s+expires_at\s*<=\s*\$1$`,
			arg:   now,
			call:  func(r *PostgresRepository) (int64, error) { return r.DeleteExpired(context.Background(), now) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, db := newRepoWithMock(t)
			defer db.Close()

			mock.ExpectExec(tt.query).WithArgs(tt.arg).WillReturnResult(sqlmock.NewResult(0, 3))
			n, err := tt.call(repo)
			require.NoError(t, err)
			assert.Equal(t, int64(3), n)

			mock.ExpectExec(tt.query).WithArgs(tt.arg).WillReturnResult(sqlmock.NewResult(0, 0))
			n, err = tt.call(repo)
			require.NoError(t, err)
			assert.Zero(t, n)

			mock.ExpectExec(tt.query).WithArgs(tt.arg).WillReturnError(errors.New("db down"))
			_, err = tt.call(repo)
			require.Error(t, err)

			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
