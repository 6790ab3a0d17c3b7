package expr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soyesenna/helix-query-sub000/expr"
)

func TestPredicateString(t *testing.T) {
	tests := []struct {
		name string
		p    *expr.Predicate
		want string
	}{
		{
			name: "and",
			p: expr.And(
				expr.Eq(expr.Lit("name"), expr.Lit("a8m")),
				expr.In(expr.Lit("org"), expr.Coll([]string{"fb", "ent"})),
			),
			want: `"name" == "a8m" && "org" in ["fb","ent"]`,
		},
		{
			name: "or-not",
			p: expr.Or(
				expr.Not(expr.Eq(expr.Lit("name"), expr.Lit("mashraki"))),
				expr.In(expr.Lit("org"), expr.Coll([]string{"fb", "ent"})),
			),
			want: `!("name" == "mashraki") || "org" in ["fb","ent"]`,
		},
		{
			name: "gt",
			p:    expr.Gt(expr.Lit("age"), expr.Lit(30)),
			want: `"age" > 30`,
		},
		{
			name: "isnull",
			p:    expr.IsNull(expr.Lit("active")),
			want: `"active" == nil`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.String())
		})
	}
}

func TestInEmptyCollectionIsNoOp(t *testing.T) {
	p := expr.In(expr.Lit("id"), expr.Coll([]int{}))
	assert.Nil(t, p)

	p = expr.In(expr.Lit("id"), nil)
	assert.Nil(t, p)
}

func TestAndOrFoldsNilArgs(t *testing.T) {
	p := expr.And(nil, expr.Eq(expr.Lit("a"), expr.Lit(1)), nil)
	assert.Equal(t, `"a" == 1`, p.String())

	assert.Nil(t, expr.And(nil, nil))
	assert.Nil(t, expr.Or())
}

func TestNotNoOp(t *testing.T) {
	assert.Nil(t, expr.Not(nil))

	p := expr.Not(expr.Not(expr.Eq(expr.Lit("a"), expr.Lit(1))))
	assert.Equal(t, `"a" == 1`, p.String())
}

func TestTrueFalse(t *testing.T) {
	assert.Equal(t, "true", expr.True().String())
	assert.Equal(t, "false", expr.False().String())
}

func TestConstantCollectionPreservesTypeWhenEmpty(t *testing.T) {
	c := expr.Coll([]int{})
	assert.Equal(t, 0, len(c.Values))
	assert.NotNil(t, c.Type)
}
