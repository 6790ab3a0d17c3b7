package field

import (
	"strings"

	"github.com/soyesenna/helix-query-sub000/expr"
)

const likeEscape = '\\'

// escapeLike escapes the wildcard characters %, _, and the escape
// character itself, so contains/startsWith/endsWith are immune to
// wildcard injection.
func escapeLike(s string) string {
	r := strings.NewReplacer(
		string(likeEscape), string(likeEscape)+string(likeEscape),
		"%", string(likeEscape)+"%",
		"_", string(likeEscape)+"_",
	)
	return r.Replace(s)
}

// StringField adds LIKE, substring/prefix/suffix search, case-insensitive
// equality, upper/lower/length, and empty/not-empty checks over Simple.
type StringField[T any] struct {
	Simple[T, string]
}

// NewString returns a StringField descriptor.
func NewString[T any](name, relationPath string) StringField[T] {
	return StringField[T]{NewSimple[T, string](name, relationPath)}
}

// Contains matches rows whose value contains s, with s's wildcard
// characters escaped before being bracketed with %.
func (f StringField[T]) Contains(s string) *expr.Predicate {
	return expr.LikeEscape(f.Path(), expr.Lit("%"+escapeLike(s)+"%"), likeEscape)
}

// StartsWith matches rows whose value is prefixed by s.
func (f StringField[T]) StartsWith(s string) *expr.Predicate {
	return expr.LikeEscape(f.Path(), expr.Lit(escapeLike(s)+"%"), likeEscape)
}

// EndsWith matches rows whose value is suffixed by s.
func (f StringField[T]) EndsWith(s string) *expr.Predicate {
	return expr.LikeEscape(f.Path(), expr.Lit("%"+escapeLike(s)), likeEscape)
}

// Like matches rows against a raw (caller-escaped) LIKE pattern.
func (f StringField[T]) Like(pattern string) *expr.Predicate {
	return expr.Like(f.Path(), expr.Lit(pattern))
}

// EqualFold is a case-insensitive equality check, lowered as
// upper(path) == upper(value).
func (f StringField[T]) EqualFold(s string) *expr.Predicate {
	return expr.Eq(
		expr.NewOperation(expr.UpperOp, f.ValueType, f.Path()),
		expr.NewOperation(expr.UpperOp, f.ValueType, expr.Lit(s)),
	)
}

// Upper, Lower, and Length return scalar string operations over the path.
func (f StringField[T]) Upper() *expr.Operation {
	return expr.NewOperation(expr.UpperOp, f.ValueType, f.Path())
}

func (f StringField[T]) Lower() *expr.Operation {
	return expr.NewOperation(expr.LowerOp, f.ValueType, f.Path())
}

func (f StringField[T]) Length() *expr.Operation {
	return expr.NewOperation(expr.LengthOp, reflectInt, f.Path())
}

// IsEmpty matches rows whose value is null OR the empty string.
func (f StringField[T]) IsEmpty() *expr.Predicate {
	return expr.Or(f.IsNull(), expr.Eq(f.Path(), expr.Lit("")))
}

// IsNotEmpty is the negation of IsEmpty.
func (f StringField[T]) IsNotEmpty() *expr.Predicate {
	return expr.Not(f.IsEmpty())
}
