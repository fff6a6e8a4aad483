package store

import (
	"testing"

	"gigrilla/internal/observability"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// newMockStore returns a Store backed by sqlmock. Unmet expectations fail the test.
func newMockStore(t *testing.T) (Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})

	return NewFromDB(sqlx.NewDb(db, "sqlmock"), observability.NewLogger()), mock
}
