package criteria_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soyesenna/helix-query-sub000/criteria"
	"github.com/soyesenna/helix-query-sub000/expr"
	"github.com/soyesenna/helix-query-sub000/field"
	"github.com/soyesenna/helix-query-sub000/session"
)

type user struct{}

type department struct{}

type userSchema struct{}

func (userSchema) Table() string { return "users" }
func (userSchema) Column(attr string) (string, bool) {
	switch attr {
	case "name", "department.name":
		return "name", true
	case "age":
		return "age", true
	}
	return "", false
}
func (userSchema) Relation(attr string) (criteria.RelationMeta, criteria.Schema, bool) {
	if attr == "department" {
		return criteria.RelationMeta{Table: "departments", ForeignKey: "department_id", TargetColumn: "id"}, departmentSchema{}, true
	}
	return criteria.RelationMeta{}, nil, false
}

type departmentSchema struct{}

func (departmentSchema) Table() string { return "departments" }
func (departmentSchema) Column(attr string) (string, bool) {
	if attr == "name" {
		return "name", true
	}
	return "", false
}
func (departmentSchema) Relation(string) (criteria.RelationMeta, criteria.Schema, bool) {
	return criteria.RelationMeta{}, nil, false
}

func TestResolveRootAttribute(t *testing.T) {
	sel := session.NewSelector(session.Postgres, "users", "t0")
	ctx := criteria.NewContext(sel, session.Postgres, "t0", userSchema{})

	name := field.NewString[user]("name", "")
	sql, args := criteria.Compile(name.Path(), ctx)
	assert.Equal(t, `"t0"."name"`, sql)
	assert.Nil(t, args)
}

func TestAutoJoinOnNestedAttribute(t *testing.T) {
	sel := session.NewSelector(session.Postgres, "users", "t0")
	ctx := criteria.NewContext(sel, session.Postgres, "t0", userSchema{})

	deptName := field.NewString[user]("department.name", "department")
	sql, _ := criteria.Compile(deptName.Path(), ctx)
	assert.Equal(t, `"t1"."name"`, sql)

	query, _ := sel.Build()
	assert.Contains(t, query, `LEFT JOIN "departments" AS "t1" ON "t0"."department_id" = "t1"."id"`)
}

func TestJoinIsMemoizedAcrossReferences(t *testing.T) {
	sel := session.NewSelector(session.Postgres, "users", "t0")
	ctx := criteria.NewContext(sel, session.Postgres, "t0", userSchema{})

	deptName := field.NewString[user]("department.name", "department")
	criteria.Compile(deptName.Path(), ctx)
	criteria.Compile(deptName.Path(), ctx)

	query, _ := sel.Build()
	assert.Equal(t, 1, strings.Count(query, "LEFT JOIN"))
}

func TestCompileBetween(t *testing.T) {
	sel := session.NewSelector(session.Postgres, "users", "t0")
	ctx := criteria.NewContext(sel, session.Postgres, "t0", userSchema{})

	age := field.NewNumber[user, int]("age", "")
	sql, args := criteria.Compile(age.Between(18, 30), ctx)
	assert.Equal(t, `"t0"."age" BETWEEN $1 AND $2`, rebindForAssert(sql))
	assert.Equal(t, []any{18, 30}, args)
}

func TestCompileInUnfoldsCollection(t *testing.T) {
	sel := session.NewSelector(session.Postgres, "users", "t0")
	ctx := criteria.NewContext(sel, session.Postgres, "t0", userSchema{})

	name := field.NewString[user]("name", "")
	sql, args := criteria.Compile(name.In([]string{"a8m", "nati"}), ctx)
	assert.Equal(t, `"t0"."name" IN (?, ?)`, sql)
	assert.Equal(t, []any{"a8m", "nati"}, args)
}

func TestCompileAndOrParenthesization(t *testing.T) {
	sel := session.NewSelector(session.Postgres, "users", "t0")
	ctx := criteria.NewContext(sel, session.Postgres, "t0", userSchema{})

	name := field.NewString[user]("name", "")
	age := field.NewNumber[user, int]("age", "")
	p := expr.And(name.Eq("a8m"), expr.Or(age.Eq(30), age.Eq(40)))

	sql, _ := criteria.Compile(p, ctx)
	assert.Equal(t, `"t0"."name" = ? AND ("t0"."age" = ? OR "t0"."age" = ?)`, sql)
}

func TestCompileBuildIntegratesWhere(t *testing.T) {
	sel := session.NewSelector(session.Postgres, "users", "t0")
	ctx := criteria.NewContext(sel, session.Postgres, "t0", userSchema{})

	name := field.NewString[user]("name", "")
	sql, args := criteria.Compile(name.Eq("a8m"), ctx)
	ctx.Selector().Where(sql, args...)

	query, bind := sel.Build()
	require.Contains(t, query, "WHERE")
	assert.Equal(t, []any{"a8m"}, bind)
}

func rebindForAssert(sql string) string {
	// The compiler emits dialect-neutral "?" placeholders; Selector.Build
	// rebinds them to "$n" for postgres. This test asserts the intended
	// rebound form directly against the raw compiled fragment.
	out := ""
	n := 0
	for _, r := range sql {
		if r == '?' {
			n++
			out += "$" + string(rune('0'+n))
			continue
		}
		out += string(r)
	}
	return out
}
