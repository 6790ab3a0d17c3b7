package query_test

import (
	"context"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/soyesenna/helix-query-sub000/herrors"
	"github.com/soyesenna/helix-query-sub000/query"
)

func TestDeleteRequiresPredicate(t *testing.T) {
	sess, _ := newUserSession(t)
	q := query.New[user](sess, userSchema{})
	_, err := q.Delete(context.Background())
	require.True(t, errors.Is(err, herrors.ErrUnboundedMutation))
}

func TestDeleteRemovesMatchingEntities(t *testing.T) {
	sess, mock := newUserSession(t)
	mock.ExpectQuery(`SELECT \* FROM "users" AS "t0" WHERE "t0"\."age" = \$1`).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "age"}).
			AddRow(int64(1), "Alice", 99).
			AddRow(int64(2), "Bob", 99))
	mock.ExpectExec(`DELETE FROM "users" WHERE "id" = \$1`).WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "users" WHERE "id" = \$1`).WithArgs(int64(2)).WillReturnResult(sqlmock.NewResult(0, 1))

	q := query.New[user](sess, userSchema{})
	q.Where(userAge.Eq(99))
	n, err := q.Delete(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(2), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteExpectingAbortsOnMismatch(t *testing.T) {
	sess, mock := newUserSession(t)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM "users" AS "t0" WHERE "t0"\."age" = \$1`).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(3)))

	q := query.New[user](sess, userSchema{})
	q.Where(userAge.Eq(99))
	_, err := q.DeleteExpecting(context.Background(), 5)
	require.True(t, errors.Is(err, herrors.ErrExpectationViolation))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteBulkRequiresPredicate(t *testing.T) {
	sess, _ := newUserSession(t)
	q := query.New[user](sess, userSchema{})
	_, err := q.DeleteBulk(context.Background())
	require.True(t, errors.Is(err, herrors.ErrUnboundedMutation))
}

func TestDeleteBulkEmitsSingleStatement(t *testing.T) {
	sess, mock := newUserSession(t)
	mock.ExpectExec(`DELETE FROM "users" AS "t0" WHERE "t0"\."age" = \$1`).
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 2))

	q := query.New[user](sess, userSchema{})
	q.Where(userAge.Eq(99))
	n, err := q.DeleteBulk(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(2), n)
	require.NoError(t, mock.ExpectationsWereMet())
}
