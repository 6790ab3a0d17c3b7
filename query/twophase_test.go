package query_test

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/soyesenna/helix-query-sub000/query"
)

// TestFetchJoinTriggersTwoPhasePagination covers a collection fetch join
// combined with a limit: it must not duplicate the root row, and the
// preloader is expected to run against the re-fetched, reordered rows.
func TestFetchJoinTriggersTwoPhasePagination(t *testing.T) {
	sess, mock := newUserSession(t)

	mock.ExpectQuery(`SELECT DISTINCT "t0"\."id" FROM "users" AS "t0".*LIMIT 10`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	mock.ExpectQuery(`SELECT DISTINCT "t0"\."id", "t0"\."name", "t0"\."age" FROM "users" AS "t0".*WHERE "t0"\."id" IN \(\$1\)`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "age"}).AddRow(int64(1), "Alice", 30))

	var preloaded []*user
	q := query.New[user](sess, userSchema{})
	q.FetchJoin("orders", func(_ context.Context, parents []*user) error {
		preloaded = append(preloaded, parents...)
		return nil
	})
	q.Limit(10)

	rows, err := q.List(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Alice", rows[0].Name)
	require.Equal(t, rows, preloaded)
	require.NoError(t, mock.ExpectationsWereMet())
}

// TestFetchJoinWithOrderByIncludesOrderColumnInPhaseOneSelect covers
// two-phase pagination combined with OrderBy: phase 1 must select the
// order column alongside the identifier (some drivers, e.g. Postgres,
// reject a DISTINCT select list that omits a column named in ORDER BY),
// and the extra column must not leak into the identifiers collected for
// phase 2's IN clause.
func TestFetchJoinWithOrderByIncludesOrderColumnInPhaseOneSelect(t *testing.T) {
	sess, mock := newUserSession(t)

	mock.ExpectQuery(`SELECT DISTINCT "t0"\."id", "t0"\."name" FROM "users" AS "t0".*ORDER BY "t0"\."name" ASC.*LIMIT 10`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(int64(1), "Alice"))

	mock.ExpectQuery(`SELECT DISTINCT "t0"\."id", "t0"\."name", "t0"\."age" FROM "users" AS "t0".*WHERE "t0"\."id" IN \(\$1\)`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "age"}).AddRow(int64(1), "Alice", 30))

	q := query.New[user](sess, userSchema{})
	q.FetchJoin("orders", func(context.Context, []*user) error { return nil })
	q.OrderBy(userName.Asc())
	q.Limit(10)

	rows, err := q.List(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Alice", rows[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPlainListWithoutPaginationSkipsTwoPhase(t *testing.T) {
	sess, mock := newUserSession(t)
	mock.ExpectQuery(`SELECT DISTINCT "t0"\."id", "t0"\."name", "t0"\."age" FROM "users" AS "t0"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "age"}).AddRow(int64(1), "Alice", 30))

	q := query.New[user](sess, userSchema{})
	q.FetchJoin("orders", func(context.Context, []*user) error { return nil })
	rows, err := q.List(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}
