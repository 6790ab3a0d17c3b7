package where_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soyesenna/helix-query-sub000/expr"
	"github.com/soyesenna/helix-query-sub000/field"
	"github.com/soyesenna/helix-query-sub000/where"
)

type account struct{}

func TestEmptyBuilderHasNoPredicate(t *testing.T) {
	b := where.New()
	assert.Nil(t, b.Predicate())
}

func TestAndCombinesAndSkipsNil(t *testing.T) {
	name := field.NewString[account]("name", "")
	b := where.New()
	b.And(name.Eq("a8m")).And(nil).And(name.NotEq("nati"))

	assert.Equal(t, `name == "a8m" && name != "nati"`, b.Predicate().String())
}

func TestOrCombines(t *testing.T) {
	age := field.NewNumber[account, int]("age", "")
	b := where.New()
	b.Or(age.Eq(30)).Or(age.Eq(40))
	assert.Equal(t, "age == 30 || age == 40", b.Predicate().String())
}

func TestAndIfGuardsApplication(t *testing.T) {
	age := field.NewNumber[account, int]("age", "")
	b := where.New()
	b.AndIf(false, age.Eq(30))
	assert.Nil(t, b.Predicate())

	b.AndIf(true, age.Eq(30))
	assert.NotNil(t, b.Predicate())
}

func TestAndIfNotNullSkipsNilValue(t *testing.T) {
	age := field.NewNumber[account, int]("age", "")
	b := where.New()
	where.AndIfNotNull[int](b, nil, func(v int) *expr.Predicate { return age.Eq(v) })
	assert.Nil(t, b.Predicate())

	v := 30
	where.AndIfNotNull(b, &v, func(v int) *expr.Predicate { return age.Eq(v) })
	assert.NotNil(t, b.Predicate())
}

func TestAndIfNotEmptySkipsEmptyString(t *testing.T) {
	name := field.NewString[account]("name", "")
	b := where.New()
	where.AndIfNotEmpty(b, "", func(s string) *expr.Predicate { return name.Eq(s) })
	assert.Nil(t, b.Predicate())

	where.AndIfNotEmpty(b, "a8m", func(s string) *expr.Predicate { return name.Eq(s) })
	assert.NotNil(t, b.Predicate())
}

func TestAndGroupDiscardsEmptyGroup(t *testing.T) {
	b := where.New()
	b.AndGroup(func(*where.Builder) {})
	assert.Nil(t, b.Predicate())
}

func TestAndGroupFoldsNestedPredicate(t *testing.T) {
	name := field.NewString[account]("name", "")
	age := field.NewNumber[account, int]("age", "")

	b := where.New()
	b.And(name.Eq("a8m"))
	b.AndGroup(func(g *where.Builder) {
		g.Or(age.Eq(30))
		g.Or(age.Eq(40))
	})

	assert.Equal(t, `name == "a8m" && (age == 30 || age == 40)`, b.Predicate().String())
}

func TestNotWrapsCurrentAndNoOpsOnEmpty(t *testing.T) {
	b := where.New()
	b.Not()
	assert.Nil(t, b.Predicate())

	name := field.NewString[account]("name", "")
	b.And(name.Eq("a8m"))
	b.Not()
	assert.Equal(t, `!(name == "a8m")`, b.Predicate().String())
}

func TestAllOfAndAnyOf(t *testing.T) {
	age := field.NewNumber[account, int]("age", "")

	b := where.New()
	b.AllOf(age.Gt(18), age.Lt(65))
	assert.Equal(t, "age > 18 && age < 65", b.Predicate().String())

	b2 := where.New()
	b2.AnyOf(age.Eq(30), nil, age.Eq(40))
	assert.Equal(t, "age == 30 || age == 40", b2.Predicate().String())
}
