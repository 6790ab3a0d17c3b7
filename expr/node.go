// Package expr is the immutable intermediate representation for filter
// predicates, scalar expressions, projections, and order clauses that the
// query builder assembles and the criteria compiler lowers to SQL.
//
// Every node kind is a value once constructed: Path, Constant, Operation,
// Predicate, Constructor, and Tuple never mutate after they are returned
// from a field descriptor or a predicate combinator, so expression trees
// are safe to share across builders and across goroutines.
package expr

import "reflect"

// Node is any IR node the criteria compiler knows how to lower.
type Node interface {
	// String renders a debug form of the node, in the style of a small
	// expression language: "age > 30 && contains(workplace, \"fb\")".
	String() string
	node()
}

// Op is the closed operator tag set from the intermediate representation.
// Every Operation and Predicate carries exactly one Op.
type Op string

const (
	// Comparison
	EQ      Op = "EQ"
	NE      Op = "NE"
	GT      Op = "GT"
	GE      Op = "GE"
	LT      Op = "LT"
	LE      Op = "LE"
	BETWEEN Op = "BETWEEN"

	// Null
	IsNullOp    Op = "IS_NULL"
	IsNotNullOp Op = "IS_NOT_NULL"

	// Collection
	InOp       Op = "IN"
	NotInOp    Op = "NOT_IN"
	MemberOfOp Op = "MEMBER_OF"
	IsEmpty    Op = "IS_EMPTY"
	IsNotEmpty Op = "IS_NOT_EMPTY"
	SizeOp     Op = "SIZE"

	// Logical
	AndOp   Op = "AND"
	OrOp    Op = "OR"
	NotOp   Op = "NOT"
	TrueOp  Op = "TRUE"
	FalseOp Op = "FALSE"

	// String
	LikeOp       Op = "LIKE"
	LikeEscapeOp Op = "LIKE_ESCAPE"
	UpperOp      Op = "UPPER"
	LowerOp      Op = "LOWER"
	TrimOp       Op = "TRIM"
	LengthOp     Op = "LENGTH"
	ConcatOp     Op = "CONCAT"
	SubstringOp  Op = "SUBSTRING"
	LocateOp     Op = "LOCATE"

	// Numeric
	AddOp      Op = "ADD"
	SubtractOp Op = "SUBTRACT"
	MultiplyOp Op = "MULTIPLY"
	DivideOp   Op = "DIVIDE"
	ModOp      Op = "MOD"
	AbsOp      Op = "ABS"
	NegateOp   Op = "NEGATE"
	SqrtOp     Op = "SQRT"

	// Aggregate
	CountOp         Op = "COUNT"
	CountDistinctOp Op = "COUNT_DISTINCT"
	SumOp           Op = "SUM"
	AvgOp           Op = "AVG"
	MinOp           Op = "MIN"
	MaxOp           Op = "MAX"

	// Temporal
	CurrentDateOp      Op = "CURRENT_DATE"
	CurrentTimeOp      Op = "CURRENT_TIME"
	CurrentTimestampOp Op = "CURRENT_TIMESTAMP"

	// Conversion
	CoalesceOp Op = "COALESCE"
	NullIfOp   Op = "NULLIF"
	CastOp     Op = "CAST"
)

// reflectOf returns the reflect.Type for V, including interface types,
// without requiring a live value.
func reflectOf[V any]() reflect.Type {
	return reflect.TypeOf((*V)(nil)).Elem()
}
