package helix_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	helix "github.com/soyesenna/helix-query-sub000"
	"github.com/soyesenna/helix-query-sub000/criteria"
	"github.com/soyesenna/helix-query-sub000/field"
	"github.com/soyesenna/helix-query-sub000/herrors"
	"github.com/soyesenna/helix-query-sub000/query"
	"github.com/soyesenna/helix-query-sub000/session"
)

// helixUser, helixDepartment, and helixOrder are the fixtures for the
// seeded end-to-end scenarios below, exercised here against a real
// in-memory SQLite database rather than a mocked driver, since these
// scenarios assert on actual row contents and ordering rather than on the
// exact SQL text issued.

type helixUser struct {
	ID           int64
	Name         string
	Age          int
	DepartmentID sql.NullInt64
	Orders       []*helixOrder
}

type helixDepartment struct {
	ID   int64
	Name string
}

type helixOrder struct {
	ID     int64
	UserID int64
	Total  int
}

type helixUserMapper struct{}

func (helixUserMapper) Table() string { return "users" }
func (helixUserMapper) Columns() []string {
	return []string{"id", "name", "age", "department_id"}
}
func (helixUserMapper) IDColumn() string { return "id" }
func (helixUserMapper) ID(u *helixUser) any {
	if u.ID == 0 {
		return nil
	}
	return u.ID
}
func (helixUserMapper) SetID(u *helixUser, id any) { u.ID = id.(int64) }
func (helixUserMapper) Values(u *helixUser) []any {
	return []any{u.ID, u.Name, u.Age, u.DepartmentID}
}
func (helixUserMapper) Scan(rows *sql.Rows) (*helixUser, error) {
	u := &helixUser{}
	if err := rows.Scan(&u.ID, &u.Name, &u.Age, &u.DepartmentID); err != nil {
		return nil, err
	}
	return u, nil
}

type helixUserSchema struct{}

func (helixUserSchema) Table() string { return "users" }
func (helixUserSchema) Column(attr string) (string, bool) {
	switch attr {
	case "id", "name", "age":
		return attr, true
	}
	return "", false
}
func (helixUserSchema) Relation(attr string) (criteria.RelationMeta, criteria.Schema, bool) {
	switch attr {
	case "department":
		return criteria.RelationMeta{
			Table: "departments", ForeignKey: "department_id", TargetColumn: "id",
		}, helixDepartmentSchema{}, true
	case "orders":
		return criteria.RelationMeta{
			Table: "orders", ForeignKey: "id", TargetColumn: "user_id", Collection: true,
		}, helixOrderSchema{}, true
	}
	return criteria.RelationMeta{}, nil, false
}

type helixDepartmentSchema struct{}

func (helixDepartmentSchema) Table() string { return "departments" }
func (helixDepartmentSchema) Column(attr string) (string, bool) {
	if attr == "name" {
		return "name", true
	}
	return "", false
}
func (helixDepartmentSchema) Relation(string) (criteria.RelationMeta, criteria.Schema, bool) {
	return criteria.RelationMeta{}, nil, false
}

type helixOrderSchema struct{}

func (helixOrderSchema) Table() string { return "orders" }
func (helixOrderSchema) Column(attr string) (string, bool) {
	switch attr {
	case "id", "total", "user_id":
		return attr, true
	}
	return "", false
}
func (helixOrderSchema) Relation(string) (criteria.RelationMeta, criteria.Schema, bool) {
	return criteria.RelationMeta{}, nil, false
}

var (
	userName = field.NewString[helixUser]("name", "")
	userAge  = field.NewComparable[helixUser, int]("age", "")
	deptName = field.NewString[helixUser]("department.name", "department")
)

// newHelixDB opens a fresh in-memory SQLite database and creates the
// fixture schema.
func newHelixDB(t *testing.T) *session.Driver {
	t.Helper()
	drv, err := session.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { drv.Close() })

	for _, stmt := range []string{
		`CREATE TABLE departments (id INTEGER PRIMARY KEY, name TEXT NOT NULL)`,
		`CREATE TABLE users (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			age INTEGER NOT NULL,
			department_id INTEGER
		)`,
		`CREATE TABLE orders (id INTEGER PRIMARY KEY, user_id INTEGER NOT NULL, total INTEGER NOT NULL)`,
	} {
		_, err := drv.DB().Exec(stmt)
		require.NoError(t, err)
	}
	return drv
}

func mustExec(t *testing.T, drv *session.Driver, stmt string, args ...any) int64 {
	t.Helper()
	res, err := drv.DB().Exec(stmt, args...)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

func newHelixService(drv *session.Driver) *helix.Service[helixUser] {
	sess := session.New[helixUser](drv.Conn, helixUserMapper{})
	factory := helix.NewFactory[helixUser](sess, helixUserSchema{})
	return helix.NewService[helixUser](factory)
}

// orderPreloader hydrates each user's Orders slice via a second query, the
// Go rendition of a JPA collection fetch join (see query.Preloader's doc
// comment).
func orderPreloader(drv *session.Driver) query.Preloader[helixUser] {
	return func(ctx context.Context, parents []*helixUser) error {
		byID := make(map[int64]*helixUser, len(parents))
		ids := make([]any, len(parents))
		for i, p := range parents {
			byID[p.ID] = p
			ids[i] = p.ID
		}
		placeholders := ""
		for i := range ids {
			if i > 0 {
				placeholders += ", "
			}
			placeholders += "?"
		}
		rows, err := drv.DB().QueryContext(ctx,
			"SELECT id, user_id, total FROM orders WHERE user_id IN ("+placeholders+")", ids...)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			o := &helixOrder{}
			if err := rows.Scan(&o.ID, &o.UserID, &o.Total); err != nil {
				return err
			}
			if u, ok := byID[o.UserID]; ok {
				u.Orders = append(u.Orders, o)
			}
		}
		return rows.Err()
	}
}

// TestScenarioEqualityAndOrdering covers equality lookup plus ascending order.
func TestScenarioEqualityAndOrdering(t *testing.T) {
	drv := newHelixDB(t)
	mustExec(t, drv, `INSERT INTO users (name, age) VALUES (?, ?)`, "Alice", 30)
	mustExec(t, drv, `INSERT INTO users (name, age) VALUES (?, ?)`, "Bob", 25)
	mustExec(t, drv, `INSERT INTO users (name, age) VALUES (?, ?)`, "Charlie", 35)
	mustExec(t, drv, `INSERT INTO users (name, age) VALUES (?, ?)`, "Diana", 28)

	svc := newHelixService(drv)
	ctx := context.Background()

	byName, err := svc.Query().Where(userName.Eq("Alice")).List(ctx)
	require.NoError(t, err)
	require.Len(t, byName, 1)
	require.Equal(t, "Alice", byName[0].Name)

	ordered, err := svc.Query().OrderBy(userAge.Asc()).List(ctx)
	require.NoError(t, err)
	names := make([]string, len(ordered))
	for i, u := range ordered {
		names[i] = u.Name
	}
	require.Equal(t, []string{"Bob", "Diana", "Alice", "Charlie"}, names)
}

// TestScenarioWildcardSafeContains covers wildcard-escaped Contains.
func TestScenarioWildcardSafeContains(t *testing.T) {
	drv := newHelixDB(t)
	mustExec(t, drv, `INSERT INTO users (name, age) VALUES (?, ?)`, "Alice", 30)
	mustExec(t, drv, `INSERT INTO users (name, age) VALUES (?, ?)`, "100%_User", 40)

	svc := newHelixService(drv)
	rows, err := svc.Query().Where(userName.Contains("%")).List(context.Background())
	require.NoError(t, err)
	require.Empty(t, rows)
}

// TestScenarioNestedAutoJoin covers filtering through a nested relation
// field, which must auto-join the relation.
func TestScenarioNestedAutoJoin(t *testing.T) {
	drv := newHelixDB(t)
	deptID := mustExec(t, drv, `INSERT INTO departments (name) VALUES (?)`, "Engineering")
	mustExec(t, drv, `INSERT INTO users (name, age, department_id) VALUES (?, ?, ?)`, "Alice", 30, deptID)
	mustExec(t, drv, `INSERT INTO users (name, age, department_id) VALUES (?, ?, ?)`, "Bob", 25, deptID)
	mustExec(t, drv, `INSERT INTO users (name, age) VALUES (?, ?)`, "Charlie", 35)

	svc := newHelixService(drv)
	rows, err := svc.Query().
		Where(deptName.Eq("Engineering")).
		OrderBy(userName.Asc()).
		List(context.Background())
	require.NoError(t, err)
	names := make([]string, len(rows))
	for i, u := range rows {
		names[i] = u.Name
	}
	require.Equal(t, []string{"Alice", "Bob"}, names)
}

// TestScenarioTwoPhasePagination covers a collection fetch join combined
// with a limit: it must return the root row once, fully hydrated, and
// Count must not be affected by the fetch.
func TestScenarioTwoPhasePagination(t *testing.T) {
	drv := newHelixDB(t)
	userID := mustExec(t, drv, `INSERT INTO users (name, age) VALUES (?, ?)`, "Alice", 30)
	for _, total := range []int{10, 20, 30} {
		mustExec(t, drv, `INSERT INTO orders (user_id, total) VALUES (?, ?)`, userID, total)
	}

	sess := session.New[helixUser](drv.Conn, helixUserMapper{})
	q := query.New[helixUser](sess, helixUserSchema{})
	q.FetchJoin("orders", orderPreloader(drv))
	q.Limit(10)

	ctx := context.Background()
	rows, err := q.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Len(t, rows[0].Orders, 3)

	q2 := query.New[helixUser](sess, helixUserSchema{})
	q2.FetchJoin("orders", orderPreloader(drv))
	count, err := q2.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

// TestScenarioManagedVsBulkDelete covers the managed-vs-bulk delete split.
func TestScenarioManagedVsBulkDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("managed", func(t *testing.T) {
		drv := newHelixDB(t)
		for i := 0; i < 3; i++ {
			mustExec(t, drv, `INSERT INTO users (name, age) VALUES (?, ?)`, "u", 99)
		}
		mustExec(t, drv, `INSERT INTO users (name, age) VALUES (?, ?)`, "other", 50)

		svc := newHelixService(drv)
		n, err := svc.Query().Where(userAge.Eq(99)).Delete(ctx)
		require.NoError(t, err)
		require.Equal(t, int64(3), n)

		remaining, err := svc.Find(ctx)
		require.NoError(t, err)
		require.Len(t, remaining, 1)
	})

	t.Run("bulk", func(t *testing.T) {
		drv := newHelixDB(t)
		for i := 0; i < 3; i++ {
			mustExec(t, drv, `INSERT INTO users (name, age) VALUES (?, ?)`, "u", 99)
		}
		mustExec(t, drv, `INSERT INTO users (name, age) VALUES (?, ?)`, "other", 50)

		svc := newHelixService(drv)
		n, err := svc.Query().Where(userAge.Eq(99)).DeleteBulk(ctx)
		require.NoError(t, err)
		require.Equal(t, int64(3), n)

		remaining, err := svc.Find(ctx)
		require.NoError(t, err)
		require.Len(t, remaining, 1)
	})
}

// TestScenarioExpectedCountGuard covers DeleteExpecting's count guard.
func TestScenarioExpectedCountGuard(t *testing.T) {
	drv := newHelixDB(t)
	for i := 0; i < 3; i++ {
		mustExec(t, drv, `INSERT INTO users (name, age) VALUES (?, ?)`, "u", 99)
	}

	svc := newHelixService(drv)
	ctx := context.Background()

	n, err := svc.Query().Where(userAge.Eq(99)).DeleteExpecting(ctx, 5)
	require.Error(t, err)
	require.ErrorIs(t, err, herrors.ErrExpectationViolation)
	require.Equal(t, int64(0), n)

	remaining, err := svc.Find(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 3)

	n, err = svc.Query().Where(userAge.Eq(99)).DeleteExpecting(ctx, 3)
	require.NoError(t, err)
	require.Equal(t, int64(3), n)

	remaining, err = svc.Find(ctx)
	require.NoError(t, err)
	require.Empty(t, remaining)
}

// TestFactorySelectFromAliasesQuery exercises the Query()/SelectFrom()
// factory alias.
func TestFactorySelectFromAliasesQuery(t *testing.T) {
	drv := newHelixDB(t)
	mustExec(t, drv, `INSERT INTO users (name, age) VALUES (?, ?)`, "Alice", 30)

	sess := session.New[helixUser](drv.Conn, helixUserMapper{})
	factory := helix.NewFactory[helixUser](sess, helixUserSchema{})

	rows, err := factory.SelectFrom().Where(userName.Eq("Alice")).List(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

// TestFactoryFuncResolvesSessionOnEveryAccess exercises the
// SessionSupplier-backed Factory, asserting the supplier is invoked fresh
// on every Query() call rather than cached at construction time.
func TestFactoryFuncResolvesSessionOnEveryAccess(t *testing.T) {
	drvA := newHelixDB(t)
	mustExec(t, drvA, `INSERT INTO users (name, age) VALUES (?, ?)`, "Alice", 30)
	drvB := newHelixDB(t)
	mustExec(t, drvB, `INSERT INTO users (name, age) VALUES (?, ?)`, "Bob", 25)

	active := drvA
	factory := helix.NewFactoryFunc[helixUser](func() *session.Session[helixUser] {
		return session.New[helixUser](active.Conn, helixUserMapper{})
	}, helixUserSchema{})

	rowsA, err := factory.Query().List(context.Background())
	require.NoError(t, err)
	require.Len(t, rowsA, 1)
	require.Equal(t, "Alice", rowsA[0].Name)

	active = drvB
	rowsB, err := factory.Query().List(context.Background())
	require.NoError(t, err)
	require.Len(t, rowsB, 1)
	require.Equal(t, "Bob", rowsB[0].Name)
}

// TestServiceFindByEmptyCollectionYieldsNoRows exercises the
// FindBy(field, collection) policy: an empty collection constrains the
// query to match nothing, rather than matching everything.
func TestServiceFindByEmptyCollectionYieldsNoRows(t *testing.T) {
	drv := newHelixDB(t)
	mustExec(t, drv, `INSERT INTO users (name, age) VALUES (?, ?)`, "Alice", 30)

	svc := newHelixService(drv)
	ctx := context.Background()
	rows, err := helix.FindByCollection[helixUser, int](ctx, svc, userAge, nil)
	require.NoError(t, err)
	require.Empty(t, rows)

	rows, err = helix.FindByCollection[helixUser, int](ctx, svc, userAge, []int{30})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	rows, err = helix.FindBy[helixUser, string](ctx, svc, userName, "Alice")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

// TestServiceSavePersistsOrMerges exercises Service.Save's persist-or-merge policy.
func TestServiceSavePersistsOrMerges(t *testing.T) {
	drv := newHelixDB(t)
	svc := newHelixService(drv)
	ctx := context.Background()

	u := &helixUser{Name: "Alice", Age: 30}
	saved, err := svc.Save(ctx, u)
	require.NoError(t, err)
	require.NotZero(t, saved.ID)

	saved.Age = 31
	_, err = svc.Save(ctx, saved)
	require.NoError(t, err)

	reloaded, err := svc.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	require.Equal(t, 31, reloaded.Age)
}
