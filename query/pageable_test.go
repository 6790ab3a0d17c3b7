package query_test

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/soyesenna/helix-query-sub000/expr"
	"github.com/soyesenna/helix-query-sub000/query"
)

func TestApplyPageableSetsLimitOffsetAndSort(t *testing.T) {
	sess, mock := newUserSession(t)
	mock.ExpectQuery(`ORDER BY "t0"\."name" ASC.*LIMIT 10.*OFFSET 20`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "age"}))

	q := query.New[user](sess, userSchema{})
	query.ApplyPageable(q, query.Pageable{
		Page: 2,
		Size: 10,
		Sort: []query.SortProperty{{Name: "name", Dir: expr.Asc}},
	}, func(name string) expr.Node {
		if name == "name" {
			return userName.Path()
		}
		return nil
	})
	_, err := q.List(context.Background())
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPageRunsContentAndCountConcurrently(t *testing.T) {
	sess, mock := newUserSession(t)
	mock.MatchExpectationsInOrder(false)
	mock.ExpectQuery(`SELECT \* FROM "users" AS "t0" LIMIT 2`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "age"}).AddRow(int64(1), "Alice", 30))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM "users" AS "t0"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(1)))

	q := query.New[user](sess, userSchema{})
	query.ApplyPageable(q, query.Pageable{Page: 0, Size: 2}, func(string) expr.Node { return nil })
	page, err := q.Page(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(1), page.Total)
	require.Len(t, page.Content, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}
