package expr

import "strings"

// Predicate is an Operation whose result type is boolean. Predicates
// compose via And, Or, and Not; True and False are explicit tautology and
// contradiction nodes so that "no predicate" and "always true" remain
// distinguishable up the stack (see the where package).
type Predicate struct {
	Op   Op
	Args []Node
}

func (*Predicate) node() {}

func newPredicate(op Op, args ...Node) *Predicate {
	return &Predicate{Op: op, Args: args}
}

// Eq returns a PathOrExpr == value predicate.
func Eq(target Node, value Node) *Predicate { return newPredicate(EQ, target, value) }

// NotEq returns a target != value predicate.
func NotEq(target Node, value Node) *Predicate { return newPredicate(NE, target, value) }

// Gt, Ge, Lt, Le return the corresponding total-order comparison.
func Gt(target, value Node) *Predicate { return newPredicate(GT, target, value) }
func Ge(target, value Node) *Predicate { return newPredicate(GE, target, value) }
func Lt(target, value Node) *Predicate { return newPredicate(LT, target, value) }
func Le(target, value Node) *Predicate { return newPredicate(LE, target, value) }

// Between returns a BETWEEN lo AND hi predicate.
func Between(target, lo, hi Node) *Predicate { return newPredicate(BETWEEN, target, lo, hi) }

// IsNull and IsNotNull are always legal, even on relation paths; they must
// not force a join to be created when the path's RelationPath is empty.
func IsNull(target Node) *Predicate    { return newPredicate(IsNullOp, target) }
func IsNotNull(target Node) *Predicate { return newPredicate(IsNotNullOp, target) }

// In returns nil (a "no predicate" no-op) when coll has no elements,
// matching invariant that an empty IN must not silently
// match all rows nor silently match none — callers that want "no match"
// use AlwaysFalse explicitly.
func In(target Node, coll *Constant) *Predicate {
	if coll == nil || len(coll.Values) == 0 {
		return nil
	}
	return newPredicate(InOp, target, coll)
}

// NotIn is the negated counterpart of In, with the same empty-collection
// no-op behavior.
func NotIn(target Node, coll *Constant) *Predicate {
	if coll == nil || len(coll.Values) == 0 {
		return nil
	}
	return newPredicate(NotInOp, target, coll)
}

// MemberOf returns a collection-membership predicate: element MEMBER OF
// target.
func MemberOf(element, target Node) *Predicate { return newPredicate(MemberOfOp, element, target) }

// IsCollectionEmpty and IsCollectionNotEmpty test a CollectionField.
func IsCollectionEmpty(target Node) *Predicate    { return newPredicate(IsEmpty, target) }
func IsCollectionNotEmpty(target Node) *Predicate { return newPredicate(IsNotEmpty, target) }

// Like returns a LIKE predicate over an already wildcard-escaped pattern.
func Like(target Node, pattern Node) *Predicate { return newPredicate(LikeOp, target, pattern) }

// LikeEscape is Like with an explicit escape character passed to the
// driver, used by contains/startsWith/endsWith after escaping the
// caller's substring.
func LikeEscape(target Node, pattern Node, escape rune) *Predicate {
	return newPredicate(LikeEscapeOp, target, pattern, Lit(string(escape)))
}

// And folds ps left to right with AND, skipping nil (no-op) predicates,
// and returns nil if every predicate was nil.
func And(ps ...*Predicate) *Predicate { return fold(AndOp, ps) }

// Or folds ps left to right with OR, skipping nil (no-op) predicates, and
// returns nil if every predicate was nil.
func Or(ps ...*Predicate) *Predicate { return fold(OrOp, ps) }

func fold(op Op, ps []*Predicate) *Predicate {
	var args []Node
	for _, p := range ps {
		if p == nil {
			continue
		}
		args = append(args, p)
	}
	switch len(args) {
	case 0:
		return nil
	case 1:
		return args[0].(*Predicate)
	default:
		return newPredicate(op, args...)
	}
}

// Not wraps p with NOT; Not(nil) is a no-op (returns nil).
func Not(p *Predicate) *Predicate {
	if p == nil {
		return nil
	}
	if p.Op == NotOp {
		return p.Args[0].(*Predicate)
	}
	return newPredicate(NotOp, p)
}

// True returns the explicit tautology predicate (always matches).
func True() *Predicate { return newPredicate(TrueOp) }

// False returns the explicit contradiction predicate (never matches),
// used by callers who want "no match" for an empty IN collection.
func False() *Predicate { return newPredicate(FalseOp) }

// String renders a small-expression-language debug form, e.g.
// `name == "a8m" && org in ["fb","ent"]`.
func (p *Predicate) String() string {
	switch p.Op {
	case AndOp:
		return joinPredicateInfix(p.Args, " && ", OrOp)
	case OrOp:
		return joinInfix(p.Args, " || ")
	case NotOp:
		return "!(" + p.Args[0].String() + ")"
	case TrueOp:
		return "true"
	case FalseOp:
		return "false"
	case EQ:
		return infix(p.Args, "==")
	case NE:
		return infix(p.Args, "!=")
	case GT:
		return infix(p.Args, ">")
	case GE:
		return infix(p.Args, ">=")
	case LT:
		return infix(p.Args, "<")
	case LE:
		return infix(p.Args, "<=")
	case BETWEEN:
		return p.Args[0].String() + " between " + p.Args[1].String() + " and " + p.Args[2].String()
	case IsNullOp:
		return p.Args[0].String() + " == nil"
	case IsNotNullOp:
		return p.Args[0].String() + " != nil"
	case InOp:
		return p.Args[0].String() + " in " + p.Args[1].String()
	case NotInOp:
		return p.Args[0].String() + " not in " + p.Args[1].String()
	default:
		return formatCall(strings.ToLower(string(p.Op)), p.Args)
	}
}

func infix(args []Node, op string) string {
	return args[0].String() + " " + op + " " + args[1].String()
}

func joinInfix(args []Node, sep string) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return strings.Join(parts, sep)
}

// joinPredicateInfix is joinInfix with parens added around any child whose
// operator is lowerPrecOp, so a nested OR inside an AND (for example)
// round-trips unambiguously in the debug string.
func joinPredicateInfix(args []Node, sep string, lowerPrecOp Op) string {
	parts := make([]string, len(args))
	for i, a := range args {
		s := a.String()
		if p, ok := a.(*Predicate); ok && p.Op == lowerPrecOp {
			s = "(" + s + ")"
		}
		parts[i] = s
	}
	return strings.Join(parts, sep)
}
