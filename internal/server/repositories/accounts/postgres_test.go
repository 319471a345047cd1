package accounts

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewPostgresRepository(db), mock
}

func TestNonce(t *testing.T) {
	q := `^SELECT nonce FROM accounts WHERE address = \$1$`

	t.Run("known", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WithArgs("5Alice").WillReturnRows(sqlmock.NewRows([]string{"nonce"}).AddRow(int64(4)))

		n, err := repo.Nonce(context.Background(), "5Alice")
		require.NoError(t, err)
		assert.Equal(t, uint64(4), n)
	})

	t.Run("unknown starts at zero", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WithArgs("5New").WillReturnError(sql.ErrNoRows)

		n, err := repo.Nonce(context.Background(), "5New")
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WithArgs("5Alice").WillReturnError(errors.New("db down"))

		_, err := repo.Nonce(context.Background(), "5Alice")
		require.ErrorContains(t, err, "db error: db down")
	})
}

func TestIncrementNonce(t *testing.T) {
	q := `(?s)^INSERT\s+INTO\s+accounts\s*\(address,\s*nonce\)\s*VALUES\s*\(\$1,\s*1\)\s*ON\s+CONFLICT\s*\(address\)\s*DO\s+UPDATE\s+SET\s+nonce\s*=\s*accounts\.nonce\s*\+\s*1\s*RETURNING\s+nonce\s*$`

	t.Run("ok", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WithArgs("5Alice").WillReturnRows(sqlmock.NewRows([]string{"nonce"}).AddRow(int64(5)))

		n, err := repo.IncrementNonce(context.Background(), "5Alice")
		require.NoError(t, err)
		assert.Equal(t, uint64(5), n)
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WithArgs("5Alice").WillReturnError(errors.New("boom"))

		_, err := repo.IncrementNonce(context.Background(), "5Alice")
		require.ErrorContains(t, err, "boom")
	})
}
