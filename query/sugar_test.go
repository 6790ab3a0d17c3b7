package query_test

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/soyesenna/helix-query-sub000/query"
)

func TestWhereEqualSugarFoldsPredicate(t *testing.T) {
	sess, mock := newUserSession(t)
	mock.ExpectQuery(`WHERE "t0"\."name" = \$1`).
		WithArgs("Alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "age"}))

	q := query.New[user](sess, userSchema{})
	query.WhereEqual[user, string](q, userName, "Alice")
	_, err := q.List(context.Background())
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrGreaterThanSugarCombinesWithOr(t *testing.T) {
	sess, mock := newUserSession(t)
	mock.ExpectQuery(`WHERE "t0"\."age" = \$1 OR "t0"\."age" > \$2`).
		WithArgs(20, 40).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "age"}))

	q := query.New[user](sess, userSchema{})
	query.WhereEqual[user, int](q, userAge, 20)
	query.OrGreaterThan[user, int](q, userAge, 40)
	_, err := q.List(context.Background())
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWhereContainsEscapesWildcards(t *testing.T) {
	sess, mock := newUserSession(t)
	mock.ExpectQuery(`WHERE "t0"\."name" LIKE \$1 ESCAPE \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "age"}))

	q := query.New[user](sess, userSchema{})
	query.WhereContains[user](q, userName, "%")
	_, err := q.List(context.Background())
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderByDescSugarAppendsOrderSpec(t *testing.T) {
	sess, mock := newUserSession(t)
	mock.ExpectQuery(`ORDER BY "t0"\."age" DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "age"}))

	q := query.New[user](sess, userSchema{})
	query.OrderByDesc[user](q, userAge)
	_, err := q.List(context.Background())
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
