package criteria

import (
	"strings"

	"github.com/soyesenna/helix-query-sub000/expr"
)

// Compile lowers an expr.Node into a SQL fragment and its bind arguments,
// walking the IR bottom-up: Path through resolvePath, Constant to a
// literal or bind placeholder, Operation and Predicate dispatched on
// operator. Constructor and Tuple are deliberately not handled here; the
// execution engine's projection code consumes them directly.
func Compile(node expr.Node, ctx *Context) (string, []any) {
	switch n := node.(type) {
	case *expr.Path:
		return ctx.ResolvePath(n.RelationPath, n.AttributeName), nil
	case *expr.Constant:
		return compileConstant(n)
	case *expr.Operation:
		return compileCall(string(n.Op), n.Args, ctx)
	case *expr.Predicate:
		return compilePredicate(n, ctx)
	default:
		return "", nil
	}
}

func compileConstant(c *expr.Constant) (string, []any) {
	if c.Null {
		return "NULL", nil
	}
	if c.Values != nil {
		placeholders := make([]string, len(c.Values))
		for i := range c.Values {
			placeholders[i] = "?"
		}
		return "(" + strings.Join(placeholders, ", ") + ")", c.Values
	}
	return "?", []any{c.Value}
}

func compileArgs(args []expr.Node, ctx *Context) ([]string, []any) {
	sqls := make([]string, len(args))
	var bindArgs []any
	for i, a := range args {
		sql, argv := Compile(a, ctx)
		sqls[i] = sql
		bindArgs = append(bindArgs, argv...)
	}
	return sqls, bindArgs
}

func compileCall(name string, args []expr.Node, ctx *Context) (string, []any) {
	sqls, bindArgs := compileArgs(args, ctx)
	switch expr.Op(name) {
	case expr.AddOp:
		return infixSQL(sqls, "+"), bindArgs
	case expr.SubtractOp:
		return infixSQL(sqls, "-"), bindArgs
	case expr.MultiplyOp:
		return infixSQL(sqls, "*"), bindArgs
	case expr.DivideOp:
		return infixSQL(sqls, "/"), bindArgs
	case expr.ModOp:
		return "MOD(" + strings.Join(sqls, ", ") + ")", bindArgs
	case expr.AbsOp:
		return "ABS(" + sqls[0] + ")", bindArgs
	case expr.NegateOp:
		return "-" + sqls[0], bindArgs
	case expr.SqrtOp:
		return "SQRT(" + sqls[0] + ")", bindArgs
	case expr.UpperOp:
		return "UPPER(" + sqls[0] + ")", bindArgs
	case expr.LowerOp:
		return "LOWER(" + sqls[0] + ")", bindArgs
	case expr.TrimOp:
		return "TRIM(" + sqls[0] + ")", bindArgs
	case expr.LengthOp:
		return "LENGTH(" + sqls[0] + ")", bindArgs
	case expr.ConcatOp:
		return "CONCAT(" + strings.Join(sqls, ", ") + ")", bindArgs
	case expr.SubstringOp:
		return "SUBSTRING(" + strings.Join(sqls, ", ") + ")", bindArgs
	case expr.LocateOp:
		return "LOCATE(" + strings.Join(sqls, ", ") + ")", bindArgs
	case expr.CountOp:
		return "COUNT(" + sqls[0] + ")", bindArgs
	case expr.CountDistinctOp:
		return "COUNT(DISTINCT " + sqls[0] + ")", bindArgs
	case expr.SumOp:
		return "SUM(" + sqls[0] + ")", bindArgs
	case expr.AvgOp:
		return "AVG(" + sqls[0] + ")", bindArgs
	case expr.MinOp:
		return "MIN(" + sqls[0] + ")", bindArgs
	case expr.MaxOp:
		return "MAX(" + sqls[0] + ")", bindArgs
	case expr.SizeOp:
		return "COUNT(" + sqls[0] + ")", bindArgs
	case expr.CurrentDateOp:
		return "CURRENT_DATE", nil
	case expr.CurrentTimeOp:
		return "CURRENT_TIME", nil
	case expr.CurrentTimestampOp:
		return "CURRENT_TIMESTAMP", nil
	case expr.CoalesceOp:
		return "COALESCE(" + strings.Join(sqls, ", ") + ")", bindArgs
	case expr.NullIfOp:
		return "NULLIF(" + strings.Join(sqls, ", ") + ")", bindArgs
	case expr.CastOp:
		return sqls[0], bindArgs
	default:
		return strings.ToUpper(name) + "(" + strings.Join(sqls, ", ") + ")", bindArgs
	}
}

func compilePredicate(p *expr.Predicate, ctx *Context) (string, []any) {
	switch p.Op {
	case expr.AndOp:
		return joinBoolean(p.Args, "AND", ctx)
	case expr.OrOp:
		return joinBoolean(p.Args, "OR", ctx)
	case expr.NotOp:
		sql, args := Compile(p.Args[0], ctx)
		return "NOT (" + sql + ")", args
	case expr.TrueOp:
		return "1 = 1", nil
	case expr.FalseOp:
		return "1 = 0", nil
	case expr.EQ:
		return infixPredicate(p.Args, "=", ctx)
	case expr.NE:
		return infixPredicate(p.Args, "<>", ctx)
	case expr.GT:
		return infixPredicate(p.Args, ">", ctx)
	case expr.GE:
		return infixPredicate(p.Args, ">=", ctx)
	case expr.LT:
		return infixPredicate(p.Args, "<", ctx)
	case expr.LE:
		return infixPredicate(p.Args, "<=", ctx)
	case expr.BETWEEN:
		target, tArgs := Compile(p.Args[0], ctx)
		lo, loArgs := Compile(p.Args[1], ctx)
		hi, hiArgs := Compile(p.Args[2], ctx)
		return target + " BETWEEN " + lo + " AND " + hi, concat(tArgs, loArgs, hiArgs)
	case expr.IsNullOp:
		target, args := Compile(p.Args[0], ctx)
		return target + " IS NULL", args
	case expr.IsNotNullOp:
		target, args := Compile(p.Args[0], ctx)
		return target + " IS NOT NULL", args
	case expr.InOp:
		return infixPredicate(p.Args, "IN", ctx)
	case expr.NotInOp:
		return infixPredicate(p.Args, "NOT IN", ctx)
	case expr.MemberOfOp:
		// element MEMBER OF collection lowers as `element IN target`,
		// with target compiled like any other node (a path, for
		// CollectionField.Contains).
		return infixPredicate(p.Args, "IN", ctx)
	case expr.IsEmpty:
		target, args := Compile(p.Args[0], ctx)
		return target + " = 0", args
	case expr.IsNotEmpty:
		target, args := Compile(p.Args[0], ctx)
		return target + " > 0", args
	case expr.LikeOp:
		return infixPredicate(p.Args, "LIKE", ctx)
	case expr.LikeEscapeOp:
		target, tArgs := Compile(p.Args[0], ctx)
		pattern, pArgs := Compile(p.Args[1], ctx)
		escape, eArgs := Compile(p.Args[2], ctx)
		return target + " LIKE " + pattern + " ESCAPE " + escape, concat(tArgs, pArgs, eArgs)
	default:
		sqls, bindArgs := compileArgs(p.Args, ctx)
		return strings.ToUpper(string(p.Op)) + "(" + strings.Join(sqls, ", ") + ")", bindArgs
	}
}

func infixSQL(sqls []string, op string) string {
	return "(" + strings.Join(sqls, " "+op+" ") + ")"
}

func infixPredicate(args []expr.Node, op string, ctx *Context) (string, []any) {
	left, leftArgs := Compile(args[0], ctx)
	right, rightArgs := Compile(args[1], ctx)
	return left + " " + op + " " + right, concat(leftArgs, rightArgs)
}

func joinBoolean(args []expr.Node, op string, ctx *Context) (string, []any) {
	parts := make([]string, len(args))
	var allArgs []any
	for i, a := range args {
		sql, argv := Compile(a, ctx)
		if p, ok := a.(*expr.Predicate); ok && (p.Op == expr.AndOp || p.Op == expr.OrOp) && p.Op != expr.Op(op) {
			sql = "(" + sql + ")"
		}
		parts[i] = sql
		allArgs = append(allArgs, argv...)
	}
	return strings.Join(parts, " "+op+" "), allArgs
}

func concat(parts ...[]any) []any {
	var out []any
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
