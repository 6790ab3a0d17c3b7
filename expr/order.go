package expr

// Direction is the sort direction of an OrderSpec.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// NullHandling is an advisory hint for where NULL values sort. An
// implementation may ignore it if the underlying driver lacks portable
// support for NULLS FIRST/LAST (see the session package's dialect
// switch, Decision D2 in DESIGN.md).
type NullHandling string

const (
	NullsDefault NullHandling = ""
	NullsFirst   NullHandling = "NULLS_FIRST"
	NullsLast    NullHandling = "NULLS_LAST"
)

// OrderSpec is the (target, direction, null-handling) triple a field
// descriptor's Asc/Desc factories produce.
type OrderSpec struct {
	Target Node
	Dir    Direction
	Nulls  NullHandling
}

// OrderAsc returns an ascending OrderSpec anchored at target.
func OrderAsc(target Node) OrderSpec { return OrderSpec{Target: target, Dir: Asc} }

// OrderDesc returns a descending OrderSpec anchored at target.
func OrderDesc(target Node) OrderSpec { return OrderSpec{Target: target, Dir: Desc} }

// WithNulls returns a copy of o with the given null-handling hint.
func (o OrderSpec) WithNulls(n NullHandling) OrderSpec {
	o.Nulls = n
	return o
}
